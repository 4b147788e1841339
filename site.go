/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docregistry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/registry"
	"github.com/suparena/docregistry/storagemodels"
)

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithAutoInstall installs registrars on every page as soon as it is created.
func WithAutoInstall() SiteOption {
	return func(s *Site) { s.autoInstall = true }
}

// WithPageOptions applies opts to every page the site creates.
func WithPageOptions(opts ...registry.Option) SiteOption {
	return func(s *Site) { s.pageOpts = append(s.pageOpts, opts...) }
}

// Site is a thread-safe set of pages keyed by name.
type Site struct {
	mu          sync.RWMutex
	pages       map[string]*Page
	autoInstall bool
	pageOpts    []registry.Option
}

// NewSite creates an empty site.
func NewSite(opts ...SiteOption) *Site {
	s := &Site{pages: make(map[string]*Page)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page returns the page called name, creating it on first use.
func (s *Site) Page(name string) *Page {
	s.mu.RLock()
	p, ok := s.pages[name]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[name]; ok {
		return p
	}
	p = NewPage(name, s.pageOpts...)
	if s.autoInstall {
		// a new page has nothing pending, so installing cannot fail
		_ = p.Install(context.Background())
	}
	s.pages[name] = p
	return p
}

// Lookup returns the page called name if it exists.
func (s *Site) Lookup(name string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[name]
	return p, ok
}

// Names returns the page names in sorted order.
func (s *Site) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install installs the registrars of every page, draining what is pending.
func (s *Site) Install(ctx context.Context) error {
	var errs []error
	for _, name := range s.Names() {
		p, _ := s.Lookup(name)
		if err := p.Install(ctx); err != nil {
			errs = append(errs, fmt.Errorf("page %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Dispatch validates env and routes it to the page it targets.
func (s *Site) Dispatch(ctx context.Context, env storagemodels.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	return s.Page(env.Page).Dispatch(ctx, env)
}

// DispatchAll dispatches envs in order. Envelopes that cannot be dispatched
// are logged and skipped; the number dispatched is returned.
func (s *Site) DispatchAll(ctx context.Context, envs []storagemodels.Envelope) int {
	logger := ctxlog.FromContext(ctx)

	n := 0
	for _, env := range envs {
		if err := s.Dispatch(ctx, env); err != nil {
			logger.Warn("Payload not dispatched.", "page", env.Page, "kind", env.Kind.String(), "source", env.Source, "error", err)
			continue
		}
		n++
	}
	return n
}

// Envelopes returns the accumulated state of every page, in page name order.
func (s *Site) Envelopes() []storagemodels.Envelope {
	var envs []storagemodels.Envelope
	for _, name := range s.Names() {
		p, _ := s.Lookup(name)
		envs = append(envs, p.Envelopes()...)
	}
	return envs
}

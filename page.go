/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docregistry

import (
	"context"
	"errors"
	"sync"

	storeerrors "github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/registry"
	"github.com/suparena/docregistry/storagemodels"
)

// Page is the namespace of one documentation page: the slots contributors
// hand their payloads to, and the registrars installed on them.
type Page struct {
	name    string
	opts    []registry.Option
	impls   *registry.ImplementorSlot
	sidebar *registry.SidebarSlot

	mu           sync.Mutex
	implementors *registry.Implementors
	sidebarIndex *registry.Sidebar
}

// NewPage creates a page with empty slots. Nothing is installed until Install.
func NewPage(name string, opts ...registry.Option) *Page {
	opts = append([]registry.Option{registry.WithName(name)}, opts...)
	return &Page{
		name:    name,
		opts:    opts,
		impls:   registry.NewImplementorSlot(opts...),
		sidebar: registry.NewSidebarSlot(opts...),
	}
}

// Name returns the page name: a trait path or a crate name.
func (p *Page) Name() string { return p.name }

// ImplementorSlot exposes the page's implementor slot.
func (p *Page) ImplementorSlot() *registry.ImplementorSlot { return p.impls }

// SidebarSlot exposes the page's sidebar slot.
func (p *Page) SidebarSlot() *registry.SidebarSlot { return p.sidebar }

// Install creates the page's registrars and installs them, draining any
// pending implementor contributions. Installing twice is a no-op.
func (p *Page) Install(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.implementors == nil {
		impls := registry.NewImplementors(p.opts...)
		if err := p.impls.Install(ctx, impls); err != nil {
			errs = append(errs, err)
		} else {
			p.implementors = impls
		}
	}
	if p.sidebarIndex == nil {
		sidebar := registry.NewSidebar(p.opts...)
		if err := p.sidebar.Install(ctx, sidebar); err != nil {
			errs = append(errs, err)
		} else {
			p.sidebarIndex = sidebar
		}
	}
	return errors.Join(errs...)
}

// Implementors returns the installed implementor registrar, or nil.
func (p *Page) Implementors() *registry.Implementors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.implementors
}

// Sidebar returns the installed sidebar builder, or nil.
func (p *Page) Sidebar() *registry.Sidebar {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sidebarIndex
}

// Contribute hands the records of crate to the page's implementor slot.
func (p *Page) Contribute(ctx context.Context, crate storagemodels.CrateName, records ...storagemodels.ImplementorRecord) error {
	return registry.Contribute(ctx, p.impls, crate, records...)
}

// ContributeSidebar hands a sidebar index to the page's sidebar slot.
func (p *Page) ContributeSidebar(ctx context.Context, items *storagemodels.SidebarItems) error {
	return registry.ContributeSidebar(ctx, p.sidebar, items)
}

// Dispatch routes env to the slot matching its payload kind.
func (p *Page) Dispatch(ctx context.Context, env storagemodels.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	if env.Page != p.name {
		return storeerrors.NewValidationError("page", "envelope targets "+env.Page+", not "+p.name)
	}
	switch env.Kind {
	case storagemodels.PayloadImplementors:
		return p.impls.Contribute(ctx, env.Implementors)
	default:
		return p.sidebar.Contribute(ctx, env.Sidebar)
	}
}

// Envelopes returns the page's accumulated state as envelopes: one for the
// implementors and one for the sidebar, each only when non-empty.
func (p *Page) Envelopes() []storagemodels.Envelope {
	var envs []storagemodels.Envelope
	if impls := p.Implementors(); impls != nil && len(impls.Crates()) > 0 {
		envs = append(envs, storagemodels.ImplementorsEnvelope(p.name, impls.Snapshot()))
	}
	if sidebar := p.Sidebar(); sidebar != nil {
		if items := sidebar.Items(); items.Len() > 0 {
			envs = append(envs, storagemodels.SidebarEnvelope(p.name, items))
		}
	}
	return envs
}

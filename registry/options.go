/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"log/slog"

	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/storagemodels"
)

// ImplementorsListener observes the records a merge actually added.
type ImplementorsListener func(ctx context.Context, added *storagemodels.Contribution)

// SidebarListener observes the items a merge actually added.
type SidebarListener func(ctx context.Context, added *storagemodels.SidebarItems)

// Option configures slots and registrars.
type Option func(*options)

type options struct {
	name             string
	logger           *slog.Logger
	noPending        bool
	implListeners    []ImplementorsListener
	sidebarListeners []SidebarListener
}

func newOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// log prefers the configured logger over the one carried by ctx.
func (o options) log(ctx context.Context) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return ctxlog.FromContext(ctx)
}

// WithName names a slot or registrar in logs and errors.
func WithName(name string) Option { return func(o *options) { o.name = name } }

// WithLogger sets the logger. Without it the logger in the call's context is used.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// WithoutPending disables the pending fallback of a slot: contributions made
// before a registrar is installed are logged and rejected.
func WithoutPending() Option { return func(o *options) { o.noPending = true } }

// OnImplementors registers a page-level update hook on an Implementors registrar.
// Hooks run while the page's slot is locked: contributing to the same page
// from a hook deadlocks. Other pages may be contributed to.
func OnImplementors(fn ImplementorsListener) Option {
	return func(o *options) { o.implListeners = append(o.implListeners, fn) }
}

// OnSidebar registers a page-level update hook on a Sidebar registrar.
// As with OnImplementors, a hook must not contribute to its own page.
func OnSidebar(fn SidebarListener) Option {
	return func(o *options) { o.sidebarListeners = append(o.sidebarListeners, fn) }
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"sync"

	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

// Registrar receives payloads handed off through a Slot.
type Registrar[P any] interface {
	Register(ctx context.Context, payload P) error
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc[P any] func(ctx context.Context, payload P) error

// Register calls f.
func (f RegistrarFunc[P]) Register(ctx context.Context, payload P) error { return f(ctx, payload) }

// MergeFunc folds next into the pending accumulator acc. acc is the zero
// value on the first call. Implementations must copy next rather than retain it.
type MergeFunc[P any] func(acc, next P) P

// Slot is the page-global handoff point between contributors and a registrar.
// It holds at most one of: an installed registrar, a pending accumulator, or nothing.
//
// Contribute and Install are serialized, so every payload is processed to
// completion before the next one, in call order. A registrar must not call
// back into its own slot.
type Slot[P any] struct {
	mu         sync.Mutex
	opt        options
	merge      MergeFunc[P]
	registrar  Registrar[P]
	pending    P
	hasPending bool
}

// NewSlot creates an empty slot. merge is required unless WithoutPending is given.
func NewSlot[P any](merge MergeFunc[P], opts ...Option) *Slot[P] {
	o := newOptions(opts)
	if merge == nil {
		o.noPending = true
	}
	return &Slot[P]{opt: o, merge: merge}
}

// Name returns the slot's configured name.
func (s *Slot[P]) Name() string { return s.opt.name }

// Contribute hands payload to the installed registrar, or parks it in the
// pending accumulator when none is installed yet.
func (s *Slot[P]) Contribute(ctx context.Context, payload P) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registrar != nil {
		return s.registrar.Register(ctx, payload)
	}
	if s.opt.noPending {
		s.opt.log(ctx).Warn("Contribution dropped, no registrar installed.", "slot", s.opt.name)
		return errors.NewNoRegistrarError(s.opt.name)
	}

	var acc P
	if s.hasPending {
		acc = s.pending
	}
	s.pending = s.merge(acc, payload)
	s.hasPending = true
	s.opt.log(ctx).Debug("Contribution parked until a registrar is installed.", "slot", s.opt.name)
	return nil
}

// Install drains any pending accumulator into r and keeps r for all later
// contributions. Draining happens before Install returns. A drain failure is
// logged; r stays installed.
func (s *Slot[P]) Install(ctx context.Context, r Registrar[P]) error {
	if r == nil {
		return errors.NewValidationError("registrar", "must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registrar != nil {
		return errors.ErrAlreadyInstalled
	}
	s.registrar = r

	if !s.hasPending {
		s.opt.log(ctx).Debug("Registrar installed.", "slot", s.opt.name)
		return nil
	}

	pending := s.pending
	var zero P
	s.pending, s.hasPending = zero, false

	if err := r.Register(ctx, pending); err != nil {
		s.opt.log(ctx).Warn("Registrar failed while draining pending contributions.", "slot", s.opt.name, "error", err)
	}
	s.opt.log(ctx).Debug("Registrar installed, pending contributions drained.", "slot", s.opt.name)
	return nil
}

// Installed reports whether a registrar is installed.
func (s *Slot[P]) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registrar != nil
}

// Pending returns the pending accumulator, if one exists.
// The returned value must not be modified.
func (s *Slot[P]) Pending() (P, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.hasPending
}

// Reset returns the slot to its empty state.
func (s *Slot[P]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero P
	s.registrar = nil
	s.pending, s.hasPending = zero, false
}

// ImplementorSlot hands off implementor contributions.
type ImplementorSlot = Slot[*storagemodels.Contribution]

// SidebarSlot hands off sidebar indexes.
type SidebarSlot = Slot[*storagemodels.SidebarItems]

// NewImplementorSlot creates a slot that parks contributions until a registrar is installed.
func NewImplementorSlot(opts ...Option) *ImplementorSlot {
	return NewSlot[*storagemodels.Contribution](mergeContributions, opts...)
}

// NewSidebarSlot creates a slot without the pending fallback.
func NewSidebarSlot(opts ...Option) *SidebarSlot {
	return NewSlot[*storagemodels.SidebarItems](nil, append(opts, WithoutPending())...)
}

func mergeContributions(acc, next *storagemodels.Contribution) *storagemodels.Contribution {
	if acc == nil {
		acc = storagemodels.NewContribution()
	}
	return acc.Merge(next)
}

// Contribute builds the one-entry contribution for crate and hands it to slot.
// It performs no validation, deduplication or rendering.
func Contribute(ctx context.Context, slot *ImplementorSlot, crate storagemodels.CrateName, records ...storagemodels.ImplementorRecord) error {
	return slot.Contribute(ctx, storagemodels.SingleContribution(crate, records...))
}

// ContributeSidebar hands a sidebar index to slot, which must already have a builder installed.
func ContributeSidebar(ctx context.Context, slot *SidebarSlot, items *storagemodels.SidebarItems) error {
	return slot.Contribute(ctx, items)
}

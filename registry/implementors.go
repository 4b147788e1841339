/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"sync"

	"github.com/suparena/docregistry/storagemodels"
)

// Stats counts what a registrar did with the payloads it received.
type Stats struct {
	Contributions int // payloads received
	Added         int // records merged into the state
	Duplicates    int // records ignored because they were already present
	Malformed     int // payloads, crates or records skipped as malformed
}

// Implementors is the registrar for one capability page. It accumulates the
// implementor records of every crate contributed so far.
//
// Records keep the order their contributor gave them and, across
// contributions for the same crate, arrival order. Crates keep the order in
// which they were first observed. A record already present for its crate is
// ignored.
type Implementors struct {
	mu    sync.RWMutex
	opt   options
	state *storagemodels.Contribution
	seen  map[storagemodels.CrateName]map[string]struct{}
	stats Stats
}

var _ Registrar[*storagemodels.Contribution] = (*Implementors)(nil)

// NewImplementors creates an empty registrar.
func NewImplementors(opts ...Option) *Implementors {
	return &Implementors{
		opt:   newOptions(opts),
		state: storagemodels.NewContribution(),
		seen:  make(map[storagemodels.CrateName]map[string]struct{}),
	}
}

// Register merges c into the registry state and notifies listeners of what
// was added. Malformed input is logged and skipped; Register never fails.
func (r *Implementors) Register(ctx context.Context, c *storagemodels.Contribution) error {
	logger := r.opt.log(ctx)

	r.mu.Lock()
	r.stats.Contributions++
	if c == nil {
		r.stats.Malformed++
		r.mu.Unlock()
		logger.Warn("Ignoring malformed contribution.", "page", r.opt.name, "reason", "nil contribution")
		return nil
	}

	added := storagemodels.NewContribution()
	for _, crate := range c.Crates() {
		if crate == "" {
			r.stats.Malformed++
			logger.Warn("Ignoring malformed contribution.", "page", r.opt.name, "reason", "empty crate name")
			continue
		}
		seen, ok := r.seen[crate]
		if !ok {
			seen = make(map[string]struct{})
			r.seen[crate] = seen
			r.state.Add(crate)
		}
		for _, rec := range c.Records(crate) {
			key := rec.Key()
			if key == "" {
				r.stats.Malformed++
				logger.Warn("Ignoring empty implementor record.", "page", r.opt.name, "crate", crate)
				continue
			}
			if _, dup := seen[key]; dup {
				r.stats.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			r.state.Add(crate, rec)
			added.Add(crate, rec)
			r.stats.Added++
		}
	}
	r.mu.Unlock()

	logger.Debug("Contribution merged.", "page", r.opt.name, "crates", c.Len(), "added", added.RecordCount())
	if !added.Empty() {
		for _, fn := range r.opt.implListeners {
			fn(ctx, added)
		}
	}
	return nil
}

// Crates returns the crates in first-observed order.
func (r *Implementors) Crates() []storagemodels.CrateName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Crates()
}

// Records returns the records of crate in registry order.
func (r *Implementors) Records(crate storagemodels.CrateName) []storagemodels.ImplementorRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Records(crate)
}

// Snapshot returns a copy of the registry state.
func (r *Implementors) Snapshot() *storagemodels.Contribution {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Len returns the number of records across all crates.
func (r *Implementors) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.RecordCount()
}

// Stats returns the registrar's counters.
func (r *Implementors) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

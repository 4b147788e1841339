/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"sync"

	"github.com/suparena/docregistry/storagemodels"
)

// Sidebar is the builder for one crate's sidebar index.
// Kinds and items keep submission order; an item name already present under
// its kind is ignored, so the first description wins.
type Sidebar struct {
	mu    sync.RWMutex
	opt   options
	items *storagemodels.SidebarItems
	seen  map[storagemodels.ItemKind]map[string]struct{}
	stats Stats
}

var _ Registrar[*storagemodels.SidebarItems] = (*Sidebar)(nil)

// NewSidebar creates an empty sidebar builder.
func NewSidebar(opts ...Option) *Sidebar {
	return &Sidebar{
		opt:   newOptions(opts),
		items: storagemodels.NewSidebarItems(),
		seen:  make(map[storagemodels.ItemKind]map[string]struct{}),
	}
}

// Register merges items into the index. Malformed input is logged and skipped.
func (s *Sidebar) Register(ctx context.Context, items *storagemodels.SidebarItems) error {
	logger := s.opt.log(ctx)

	s.mu.Lock()
	s.stats.Contributions++
	if items == nil {
		s.stats.Malformed++
		s.mu.Unlock()
		logger.Warn("Ignoring malformed sidebar payload.", "crate", s.opt.name, "reason", "nil payload")
		return nil
	}

	added := storagemodels.NewSidebarItems()
	for _, kind := range items.Kinds() {
		if kind == "" {
			s.stats.Malformed++
			logger.Warn("Ignoring malformed sidebar payload.", "crate", s.opt.name, "reason", "empty kind")
			continue
		}
		seen, ok := s.seen[kind]
		if !ok {
			seen = make(map[string]struct{})
			s.seen[kind] = seen
			s.items.Add(kind)
		}
		for _, item := range items.Items(kind) {
			if item.Name == "" {
				s.stats.Malformed++
				logger.Warn("Ignoring unnamed sidebar item.", "crate", s.opt.name, "kind", kind)
				continue
			}
			if _, dup := seen[item.Name]; dup {
				s.stats.Duplicates++
				continue
			}
			seen[item.Name] = struct{}{}
			s.items.Add(kind, item)
			added.Add(kind, item)
			s.stats.Added++
		}
	}
	s.mu.Unlock()

	if added.Len() > 0 {
		for _, fn := range s.opt.sidebarListeners {
			fn(ctx, added)
		}
	}
	return nil
}

// Items returns a copy of the index.
func (s *Sidebar) Items() *storagemodels.SidebarItems {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Clone()
}

// Stats returns the builder's counters.
func (s *Sidebar) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docregistry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docregistry/datastore"
	storeerrors "github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/registry"
	"github.com/suparena/docregistry/storagemodels"
)

// ImplementorSetIndexMap lays implementor sets out by page, with a crate
// index on GSI1 answering which pages a crate contributes to.
var ImplementorSetIndexMap = map[string]string{
	"PK":     "TRAIT#{Trait}",
	"SK":     "CRATE#{Crate}",
	"GSI1PK": "CRATE#{Crate}",
	"GSI1SK": "TRAIT#{Trait}",
}

// CrateIndex is the secondary index of ImplementorSetIndexMap.
const CrateIndex = "GSI1"

func init() {
	registry.RegisterIndexMap[storagemodels.ImplementorSet](ImplementorSetIndexMap)
	registry.RegisterType(registry.EntityTypeName[storagemodels.ImplementorSet](), decodeImplementorSet)
}

func decodeImplementorSet(item map[string]types.AttributeValue) (interface{}, error) {
	var set storagemodels.ImplementorSet
	if err := attributevalue.UnmarshalMap(item, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// TraitPartition returns the partition key holding the sets of trait.
func TraitPartition(trait string) string {
	return "TRAIT#" + trait
}

// SnapshotStore saves page implementors as one ImplementorSet per crate.
type SnapshotStore struct {
	store datastore.DataStore[storagemodels.ImplementorSet]
	now   func() time.Time
}

// NewSnapshotStore wraps store.
func NewSnapshotStore(store datastore.DataStore[storagemodels.ImplementorSet]) *SnapshotStore {
	return &SnapshotStore{store: store, now: time.Now}
}

// Save writes the current implementors of page, one set per crate, keeping
// each crate's position on the page. It returns the number of sets written.
func (s *SnapshotStore) Save(ctx context.Context, page *Page) (int, error) {
	impls := page.Implementors()
	if impls == nil {
		return 0, storeerrors.NewNoRegistrarError(page.Name())
	}

	snap := impls.Snapshot()
	now := s.now()
	for i, crate := range snap.Crates() {
		set := storagemodels.ImplementorSet{
			Trait:    page.Name(),
			Crate:    string(crate),
			Position: i,
			Records:  snap.Records(crate),
		}
		set.Touch(now)
		if err := s.store.Put(ctx, set); err != nil {
			return i, fmt.Errorf("failed to save %s: %w", set.Key(), err)
		}
	}

	ctxlog.FromContext(ctx).Info("Page snapshot saved.", "page", page.Name(), "sets", snap.Len())
	return snap.Len(), nil
}

// Sets streams the saved sets of trait, ordered by position.
func (s *SnapshotStore) Sets(ctx context.Context, trait string, opts ...storagemodels.StreamOption) ([]storagemodels.ImplementorSet, error) {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sets []storagemodels.ImplementorSet
	for res := range s.store.Stream(streamCtx, storagemodels.PartitionQuery(TraitPartition(trait)), opts...) {
		if res.Error != nil {
			return nil, fmt.Errorf("failed to load sets of %s: %w", trait, res.Error)
		}
		if res.Item.Trait != trait {
			continue
		}
		sets = append(sets, res.Item)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(sets, func(i, j int) bool { return sets[i].Position < sets[j].Position })
	return sets, nil
}

// Restore contributes the saved sets of page back through the page's slot,
// crate by crate in saved order. It returns the number of sets contributed.
func (s *SnapshotStore) Restore(ctx context.Context, page *Page, opts ...storagemodels.StreamOption) (int, error) {
	sets, err := s.Sets(ctx, page.Name(), opts...)
	if err != nil {
		return 0, err
	}
	for i, set := range sets {
		if err := page.Contribute(ctx, storagemodels.CrateName(set.Crate), set.Records...); err != nil {
			return i, err
		}
	}

	ctxlog.FromContext(ctx).Info("Page snapshot restored.", "page", page.Name(), "sets", len(sets))
	return len(sets), nil
}

// Load returns the saved set of crate on the trait page.
func (s *SnapshotStore) Load(ctx context.Context, trait, crate string) (*storagemodels.ImplementorSet, error) {
	return s.store.GetOne(ctx, storagemodels.ImplementorSet{Trait: trait, Crate: crate}.Key())
}

// Delete removes the saved set of crate on the trait page.
func (s *SnapshotStore) Delete(ctx context.Context, trait, crate string) error {
	return s.store.Delete(ctx, storagemodels.ImplementorSet{Trait: trait, Crate: crate}.Key())
}

// Pages lists the traits crate has saved sets for, using the crate index.
func (s *SnapshotStore) Pages(ctx context.Context, crate string) ([]string, error) {
	idx, ok := s.store.(datastore.IndexQuerier[storagemodels.ImplementorSet])
	if !ok {
		return nil, fmt.Errorf("datastore %T cannot query the crate index", s.store)
	}
	sets, err := idx.QueryIndex(ctx, CrateIndex, crate, "")
	if err != nil {
		return nil, err
	}

	traits := make([]string, 0, len(sets))
	for _, set := range sets {
		traits = append(traits, set.Trait)
	}
	return traits, nil
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docregistry/datastore"
	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

// IndexFunc returns the partition and sort values of an entity in a secondary index.
type IndexFunc[T any] func(entity T) (partition, sort string)

// DataStore is a mock implementation of datastore.DataStore[T] for testing.
// Entities are kept in key order.
type DataStore[T any] struct {
	mu            sync.RWMutex
	data          map[string]T
	queryFunc     func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	streamFunc    func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	getKeyFunc    func(entity T) string
	partitionFunc func(entity T) string
	indexes       map[string]IndexFunc[T]
	putError      error
	deleteError   error
	puts          int
}

var (
	_ datastore.DataStore[storagemodels.ImplementorSet]    = (*DataStore[storagemodels.ImplementorSet])(nil)
	_ datastore.IndexQuerier[storagemodels.ImplementorSet] = (*DataStore[storagemodels.ImplementorSet])(nil)
)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data:    make(map[string]T),
		indexes: make(map[string]IndexFunc[T]),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities.
// Without one, entities providing a Key() string method are keyed by it.
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithPartitionFunc makes Query and Stream return only the entities whose
// partition value equals the ":pk" expression value.
func (m *DataStore[T]) WithPartitionFunc(f func(T) string) *DataStore[T] {
	m.partitionFunc = f
	return m
}

// WithIndex registers a secondary index served by QueryIndex.
func (m *DataStore[T]) WithIndex(name string, f IndexFunc[T]) *DataStore[T] {
	m.indexes[name] = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithStreamFunc sets a custom stream function for testing
func (m *DataStore[T]) WithStreamFunc(f func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]) *DataStore[T] {
	m.streamFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.data[key] = entity
	m.puts++
	return nil
}

// Query executes a query
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	matches := m.matching(params)
	results := make([]interface{}, 0, len(matches))
	for _, v := range matches {
		results = append(results, v)
	}
	return results, nil
}

// Stream returns a channel of results
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, params, opts...)
	}

	options := storagemodels.ApplyStreamOptions(opts...)
	matches := m.matching(params)
	resultChan := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultChan)

		for i, v := range matches {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult[T]{
				Item: v,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: 1,
				},
			}:
			}
		}
		if options.ProgressHandler != nil {
			options.ProgressHandler(storagemodels.StreamProgress{
				ItemsProcessed: int64(len(matches)),
				PagesProcessed: 1,
			})
		}
	}()

	return resultChan
}

// QueryIndex returns the entities of a registered index whose partition value
// equals partitionValue and whose sort value starts with sortPrefix, in sort order.
func (m *DataStore[T]) QueryIndex(ctx context.Context, indexName, partitionValue, sortPrefix string) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index, ok := m.indexes[indexName]
	if !ok {
		return nil, errors.NewValidationError("index", fmt.Sprintf("unknown index %q", indexName))
	}

	type hit struct {
		sort   string
		entity T
	}
	var hits []hit
	for _, key := range m.sortedKeys() {
		entity := m.data[key]
		p, s := index(entity)
		if p == partitionValue && strings.HasPrefix(s, sortPrefix) {
			hits = append(hits, hit{sort: s, entity: entity})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sort < hits[j].sort })

	out := make([]T, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.entity)
	}
	return out, nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Puts returns the number of successful Put calls
func (m *DataStore[T]) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]T)
}

// matching returns the entities selected by params, in key order.
func (m *DataStore[T]) matching(params *storagemodels.QueryParams) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var partition string
	filter := false
	if m.partitionFunc != nil && params != nil {
		if v, ok := params.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS); ok {
			partition, filter = v.Value, true
		}
	}

	out := make([]T, 0, len(m.data))
	for _, key := range m.sortedKeys() {
		entity := m.data[key]
		if filter && m.partitionFunc(entity) != partition {
			continue
		}
		out = append(out, entity)
	}
	return out
}

func (m *DataStore[T]) sortedKeys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// extractKey attempts to extract a key from an entity
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	if keyed, ok := any(entity).(interface{ Key() string }); ok {
		return keyed.Key()
	}
	return fmt.Sprintf("key_%v", entity)
}

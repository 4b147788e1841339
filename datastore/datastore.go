/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/docregistry/storagemodels"
)

type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	Delete(ctx context.Context, key string) error
}

// IndexQuerier is implemented by stores that can query a secondary index.
// partitionValue and sortPrefix are macro values of the index map templates.
type IndexQuerier[T any] interface {
	QueryIndex(ctx context.Context, indexName, partitionValue, sortPrefix string) ([]T, error)
}

/*
Package datastore defines the persistence interface used to save and restore
registry snapshots.

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    Delete(ctx context.Context, key string) error
	}

String keys are composite: their parts are joined with
storagemodels.KeySeparator, so the implementor set of crate syn on the
core::hash::Hash page is "core::hash::Hash|syn".

Implementations:
  - ddb: DynamoDB, single-table design
  - mock: in-memory, for tests
*/
package datastore

/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design with macro-based key expansion
  - Automatic EntityType injection for polymorphic decoding
  - Global Secondary Index queries through GSIQueryBuilder
  - Paged streaming with retry and progress reporting

Key templates come from the index map registered for the entity type:

	registry.RegisterIndexMap[storagemodels.ImplementorSet](map[string]string{
	    "PK":     "TRAIT#{Trait}",   // "TRAIT#core::hash::Hash"
	    "SK":     "CRATE#{Crate}",   // "CRATE#syn"
	    "GSI1PK": "CRATE#{Crate}",
	    "GSI1SK": "TRAIT#{Trait}",
	})

String keys passed to GetOne and Delete carry the macro values joined by
storagemodels.KeySeparator in order of first appearance, so the key above is
"core::hash::Hash|syn".

Streaming:

	results := store.Stream(ctx, storagemodels.PartitionQuery("TRAIT#core::hash::Hash"),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)
	for r := range results {
	    if r.Error != nil { ... }
	}
*/
package ddb

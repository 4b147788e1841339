/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/registry"
	"github.com/suparena/docregistry/storagemodels"
)

// GSIConfig holds the key attribute names of a global secondary index.
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the partition key attribute and index map field (e.g., "GSI1PK")
	PartitionKeyName string
	// SortKeyName is the sort key attribute and index map field (e.g., "GSI1SK")
	SortKeyName string
}

// DefaultGSIConfigs holds the known GSI configurations
var DefaultGSIConfigs = map[string]GSIConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "GSI1PK",
		SortKeyName:      "GSI1SK",
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	cfg, ok := DefaultGSIConfigs[indexName]
	return cfg, ok
}

// GSIQueryBuilder provides a fluent interface for building GSI queries.
// Key values are macro values; the literal prefix of the index map template
// ("CRATE#" in "CRATE#{Crate}") is added by Build.
type GSIQueryBuilder[T any] struct {
	store      *DynamodbDataStore[T]
	indexName  string
	pkValue    string
	skValue    string
	skOperator string // "=" or "begins_with"
	limit      *int32
	forward    *bool
}

// QueryGSI creates a new query builder on GSI1.
func (d *DynamodbDataStore[T]) QueryGSI() *GSIQueryBuilder[T] {
	return &GSIQueryBuilder[T]{store: d, indexName: "GSI1"}
}

// OnIndex selects another configured index.
func (q *GSIQueryBuilder[T]) OnIndex(indexName string) *GSIQueryBuilder[T] {
	q.indexName = indexName
	return q
}

// WithPartitionKey sets the GSI partition key value
func (q *GSIQueryBuilder[T]) WithPartitionKey(value string) *GSIQueryBuilder[T] {
	q.pkValue = value
	return q
}

// WithSortKey sets the GSI sort key value with equals operator
func (q *GSIQueryBuilder[T]) WithSortKey(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix sets the GSI sort key to use begins_with operator
func (q *GSIQueryBuilder[T]) WithSortKeyPrefix(prefix string) *GSIQueryBuilder[T] {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithLimit sets the page size of the query
func (q *GSIQueryBuilder[T]) WithLimit(limit int32) *GSIQueryBuilder[T] {
	q.limit = aws.Int32(limit)
	return q
}

// Descending reverses the sort key order.
func (q *GSIQueryBuilder[T]) Descending() *GSIQueryBuilder[T] {
	q.forward = aws.Bool(false)
	return q
}

// Build constructs the final query parameters
func (q *GSIQueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if q.pkValue == "" {
		return nil, storeerrors.NewValidationError("partitionKey", "GSI partition key value is required")
	}
	cfg, ok := GetGSIConfig(q.indexName)
	if !ok {
		return nil, storeerrors.NewValidationError("index", fmt.Sprintf("unknown index %q", q.indexName))
	}
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, storeerrors.ErrNoIndexMap
	}
	pkTemplate, ok := indexMap[cfg.PartitionKeyName]
	if !ok {
		return nil, fmt.Errorf("%s not found in index map", cfg.PartitionKeyName)
	}

	params := &storagemodels.QueryParams{
		TableName:              q.store.tableName,
		KeyConditionExpression: cfg.PartitionKeyName + " = :pk",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: templatePrefix(pkTemplate) + q.pkValue},
		},
		IndexName:        aws.String(cfg.IndexName),
		Limit:            q.limit,
		ScanIndexForward: q.forward,
	}

	if q.skValue != "" {
		sk := q.skValue
		if prefix := templatePrefix(indexMap[cfg.SortKeyName]); !strings.HasPrefix(sk, prefix) {
			sk = prefix + sk
		}
		switch q.skOperator {
		case "begins_with":
			params.KeyConditionExpression += fmt.Sprintf(" AND begins_with(%s, :sk)", cfg.SortKeyName)
		default:
			params.KeyConditionExpression += fmt.Sprintf(" AND %s = :sk", cfg.SortKeyName)
		}
		params.ExpressionAttributeValues[":sk"] = &types.AttributeValueMemberS{Value: sk}
	}
	return params, nil
}

// Execute runs the query across all pages and returns the typed results.
func (q *GSIQueryBuilder[T]) Execute(ctx context.Context, opts ...storagemodels.StreamOption) ([]T, error) {
	var items []T
	for res := range q.Stream(ctx, opts...) {
		if res.Error != nil {
			return nil, res.Error
		}
		items = append(items, res.Item)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Stream executes the query as a stream
func (q *GSIQueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	params, err := q.Build()
	if err != nil {
		ch := make(chan storagemodels.StreamResult[T], 1)
		ch <- storagemodels.StreamResult[T]{
			Error: fmt.Errorf("failed to build query: %w", err),
		}
		close(ch)
		return ch
	}
	return q.store.Stream(ctx, params, opts...)
}

// QueryIndex returns the items whose index partition key holds partitionValue,
// optionally narrowed to sort keys starting with sortPrefix.
func (d *DynamodbDataStore[T]) QueryIndex(ctx context.Context, indexName, partitionValue, sortPrefix string) ([]T, error) {
	q := d.QueryGSI().OnIndex(indexName).WithPartitionKey(partitionValue)
	if sortPrefix != "" {
		q.WithSortKeyPrefix(sortPrefix)
	}
	return q.Execute(ctx)
}

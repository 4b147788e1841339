/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docregistry/registry"
	"github.com/suparena/docregistry/storagemodels"
)

// Query performs a single-page query against the store's table. params.TableName
// is ignored. Each item is decoded through the type registry using its
// EntityType attribute; unregistered types come back as generic maps.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	input := &dynamodb.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	results := make([]interface{}, 0, len(out.Items))
	for _, item := range out.Items {
		obj, err := decodeItem(item)
		if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	return results, nil
}

func decodeItem(item map[string]types.AttributeValue) (interface{}, error) {
	attr, ok := item[EntityTypeAttribute]
	if !ok {
		return nil, fmt.Errorf("missing %s attribute in item", EntityTypeAttribute)
	}
	var entityType string
	if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
		return nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
	}

	decode, err := registry.GetDecodeFunc(entityType)
	if err != nil {
		var generic map[string]interface{}
		if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
			return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
		}
		return generic, nil
	}

	obj, err := decode(item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, err)
	}
	return obj, nil
}

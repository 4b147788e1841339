/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/docregistry/errors"
)

func TestGSIQueryBuilderBuild(t *testing.T) {
	store := NewWithClient[testSet](newFakeClient(), "docindex")

	params, err := store.QueryGSI().
		WithPartitionKey("syn").
		WithSortKeyPrefix("core::").
		WithLimit(10).
		Descending().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "GSI1PK = :pk AND begins_with(GSI1SK, :sk)", params.KeyConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "CRATE#syn"}, params.ExpressionAttributeValues[":pk"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TRAIT#core::"}, params.ExpressionAttributeValues[":sk"])
	assert.Equal(t, "GSI1", aws.ToString(params.IndexName))
	assert.Equal(t, int32(10), aws.ToInt32(params.Limit))
	assert.False(t, aws.ToBool(params.ScanIndexForward))
}

func TestGSIQueryBuilderExactSortKey(t *testing.T) {
	store := NewWithClient[testSet](newFakeClient(), "docindex")

	params, err := store.QueryGSI().WithPartitionKey("syn").WithSortKey("TRAIT#core::hash::Hash").Build()
	require.NoError(t, err)
	assert.Equal(t, "GSI1PK = :pk AND GSI1SK = :sk", params.KeyConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TRAIT#core::hash::Hash"}, params.ExpressionAttributeValues[":sk"],
		"values that already carry the prefix are kept")
}

func TestGSIQueryBuilderValidation(t *testing.T) {
	store := NewWithClient[testSet](newFakeClient(), "docindex")

	_, err := store.QueryGSI().Build()
	assert.True(t, storeerrors.IsValidationError(err))

	_, err = store.QueryGSI().OnIndex("GSI9").WithPartitionKey("syn").Build()
	assert.True(t, storeerrors.IsValidationError(err))

	items, err := store.QueryIndex(context.Background(), "GSI9", "syn", "")
	assert.Error(t, err)
	assert.Empty(t, items)
}

func TestQueryIndex(t *testing.T) {
	client := newFakeClient()
	client.pages = []*sdk.QueryOutput{{
		Items: []map[string]types.AttributeValue{
			storedItem(testSet{Trait: "core::hash::Hash", Crate: "syn", Count: 44}),
			storedItem(testSet{Trait: "core::fmt::Debug", Crate: "syn", Count: 50}),
		},
	}}
	store := NewWithClient[testSet](client, "docindex")

	items, err := store.QueryIndex(context.Background(), "GSI1", "syn", "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "core::fmt::Debug", items[1].Trait)

	q := client.queryInputs()[0]
	assert.Equal(t, "GSI1PK = :pk", aws.ToString(q.KeyConditionExpression))
	assert.Equal(t, "GSI1", aws.ToString(q.IndexName))
}

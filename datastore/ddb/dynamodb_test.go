/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/docregistry/errors"
)

func TestPutInjectsKeysAndEntityType(t *testing.T) {
	client := newFakeClient()
	store := NewWithClient[testSet](client, "docindex")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSet{Trait: "core::hash::Hash", Crate: "syn", Count: 44}))

	item, ok := client.items["TRAIT#core::hash::Hash/CRATE#syn"]
	require.True(t, ok, "item stored under expanded keys")
	assert.Equal(t, &types.AttributeValueMemberS{Value: "CRATE#syn"}, item["GSI1PK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "TRAIT#core::hash::Hash"}, item["GSI1SK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "testSet"}, item[EntityTypeAttribute])
	assert.Equal(t, "docindex", store.TableName())
}

func TestGetOneAndDelete(t *testing.T) {
	client := newFakeClient()
	store := NewWithClient[testSet](client, "docindex")
	ctx := context.Background()

	want := testSet{Trait: "core::hash::Hash", Crate: "pest", Count: 6}
	require.NoError(t, store.Put(ctx, want))

	got, err := store.GetOne(ctx, "core::hash::Hash|pest")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	require.NoError(t, store.Delete(ctx, "core::hash::Hash|pest"))

	_, err = store.GetOne(ctx, "core::hash::Hash|pest")
	assert.True(t, storeerrors.IsNotFound(err), "got %v", err)
}

func TestPutRejectsIncompleteKeys(t *testing.T) {
	store := NewWithClient[testSet](newFakeClient(), "docindex")

	err := store.Put(context.Background(), testSet{Trait: "core::hash::Hash"})
	assert.True(t, storeerrors.IsValidationError(err), "got %v", err)
}

func TestStoreWithoutIndexMap(t *testing.T) {
	store := NewWithClient[unmappedEntity](newFakeClient(), "docindex")
	ctx := context.Background()

	assert.True(t, errors.Is(store.Put(ctx, unmappedEntity{ID: "x"}), storeerrors.ErrNoIndexMap))
	_, err := store.GetOne(ctx, "x")
	assert.True(t, errors.Is(err, storeerrors.ErrNoIndexMap))
	assert.True(t, errors.Is(store.Delete(ctx, "x"), storeerrors.ErrNoIndexMap))
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexedThing struct {
	ID string
}

func TestIndexMapRegistry(t *testing.T) {
	_, ok := GetIndexMap[indexedThing]()
	assert.False(t, ok)

	src := map[string]string{"PK": "THING#{ID}", "SK": "THING#{ID}"}
	RegisterIndexMap[indexedThing](src)
	src["PK"] = "mutated"

	got, ok := GetIndexMap[indexedThing]()
	require.True(t, ok)
	assert.Equal(t, "THING#{ID}", got["PK"], "registry keeps its own copy")
	assert.Equal(t, "indexedThing", EntityTypeName[indexedThing]())
}

func TestTypeRegistry(t *testing.T) {
	decode := func(item map[string]types.AttributeValue) (interface{}, error) {
		return &indexedThing{ID: "x"}, nil
	}
	RegisterType("indexedThing", decode)

	fn, err := GetDecodeFunc("indexedThing")
	require.NoError(t, err)
	obj, err := fn(nil)
	require.NoError(t, err)
	assert.Equal(t, &indexedThing{ID: "x"}, obj)

	_, err = GetDecodeFunc("missing")
	assert.Error(t, err)

	assert.Panics(t, func() { RegisterType("indexedThing", decode) })
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DecodeFunc turns a raw DynamoDB item into the entity its EntityType names.
type DecodeFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	typeRegistry = make(map[string]DecodeFunc)
	typeMu       sync.RWMutex
)

// RegisterType registers a decode function for an entity type name.
// It panics if the name is already registered, to prevent accidental overrides.
func RegisterType(entityType string, fn DecodeFunc) {
	typeMu.Lock()
	defer typeMu.Unlock()
	if _, exists := typeRegistry[entityType]; exists {
		panic(fmt.Sprintf("type registry: entity type %q already registered", entityType))
	}
	typeRegistry[entityType] = fn
}

// GetDecodeFunc returns the decode function registered for entityType.
func GetDecodeFunc(entityType string) (DecodeFunc, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()
	fn, ok := typeRegistry[entityType]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for %q", entityType)
	}
	return fn, nil
}

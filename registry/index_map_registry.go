/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// The index map registry associates Go entity types with their DynamoDB key
// templates (PK, SK, ...), where "{Field}" expands to the entity's field value.

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	indexMu          sync.RWMutex
)

// RegisterIndexMap associates type T with idxMap. A later call replaces the map.
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := reflect.TypeFor[T]()

	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	indexMu.Lock()
	defer indexMu.Unlock()
	indexMapRegistry[t] = cp
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	t := reflect.TypeFor[T]()

	indexMu.RLock()
	defer indexMu.RUnlock()
	m, ok := indexMapRegistry[t]
	return m, ok
}

// EntityTypeName is the EntityType attribute value stored for T.
func EntityTypeName[T any]() string {
	return reflect.TypeFor[T]().Name()
}

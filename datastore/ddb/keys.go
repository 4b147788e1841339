/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills every template of indexMap from the entity's attributes.
// Macros naming a missing or non-scalar attribute expand to "".
func expandMacros(indexMap map[string]string, entity any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		missing := false
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			v := scalarString(av[strings.Trim(macro, "{}")])
			if v == "" {
				missing = true
			}
			return v
		})
		if missing {
			// never store a half-expanded key such as "CRATE#"
			expanded = ""
		}
		res[field] = expanded
	}
	return res, nil
}

func scalarString(val types.AttributeValue) string {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		return ""
	}
}

// expandStringKey expands the primary key templates from a composite string
// key. The key's parts are assigned to the distinct macros in order of first
// appearance, PK before SK; a key with a single part fills every macro.
func expandStringKey(indexMap map[string]string, key string) (map[string]string, error) {
	if key == "" {
		return nil, storeerrors.NewValidationError("key", "must not be empty")
	}

	var macros []string
	seen := make(map[string]bool)
	for _, field := range []string{"PK", "SK"} {
		for _, m := range macroPattern.FindAllStringSubmatch(indexMap[field], -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				macros = append(macros, m[1])
			}
		}
	}

	parts := strings.Split(key, storagemodels.KeySeparator)
	values := make(map[string]string, len(macros))
	switch {
	case len(parts) == 1:
		for _, m := range macros {
			values[m] = parts[0]
		}
	case len(parts) == len(macros):
		for i, m := range macros {
			values[m] = parts[i]
		}
	default:
		return nil, storeerrors.NewValidationError("key",
			fmt.Sprintf("%q has %d parts, key templates use %d macros", key, len(parts), len(macros)))
	}

	expanded := make(map[string]string, 2)
	for _, field := range []string{"PK", "SK"} {
		template, ok := indexMap[field]
		if !ok {
			continue
		}
		expanded[field] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			return values[strings.Trim(macro, "{}")]
		})
	}
	return expanded, nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, storeerrors.NewValidationError("key", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// templatePrefix returns the literal text before the first macro of template,
// e.g. "CRATE#" for "CRATE#{Crate}".
func templatePrefix(template string) string {
	if loc := macroPattern.FindStringIndex(template); loc != nil {
		return template[:loc[0]]
	}
	return template
}

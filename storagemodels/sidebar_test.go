/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suparena/docregistry/errors"
)

func TestSidebarItemsDecodePairs(t *testing.T) {
	// the legacy payload is JSON, which yaml.v3 reads as flow YAML
	doc := `{"enum":[["Abi",""],["Lit","Literal kind."]],"fn":[["parse_ident",""]]}`

	var items SidebarItems
	require.NoError(t, yaml.Unmarshal([]byte(doc), &items))

	assert.Equal(t, []ItemKind{"enum", "fn"}, items.Kinds())
	assert.Equal(t, []SidebarItem{
		{Name: "Abi"},
		{Name: "Lit", Description: "Literal kind."},
	}, items.Items("enum"))
	assert.Equal(t, []SidebarItem{{Name: "parse_ident"}}, items.Items("fn"))
}

func TestSidebarItemsDecodeMappings(t *testing.T) {
	doc := `
struct:
  - name: Ident
  - {name: Path, description: A path}
  - Lifetime
`
	var items SidebarItems
	require.NoError(t, yaml.Unmarshal([]byte(doc), &items))
	assert.Equal(t, []SidebarItem{
		{Name: "Ident"},
		{Name: "Path", Description: "A path"},
		{Name: "Lifetime"},
	}, items.Items("struct"))
}

func TestSidebarItemRejectsLongTuple(t *testing.T) {
	var items SidebarItems
	err := yaml.Unmarshal([]byte(`{"enum":[["a","b","c"]]}`), &items)
	assert.Error(t, err)
}

func TestSidebarItemsJSONOrder(t *testing.T) {
	items := NewSidebarItems().
		Add("struct", SidebarItem{Name: "Ident"}).
		Add("enum", SidebarItem{Name: "Abi", Description: "abi"})

	out, err := json.Marshal(items)
	require.NoError(t, err)
	assert.Equal(t, `{"struct":[{"name":"Ident"}],"enum":[{"name":"Abi","description":"abi"}]}`, string(out))
}

func TestEnvelopeValidate(t *testing.T) {
	tests := []struct {
		name      string
		env       Envelope
		malformed bool
		invalid   bool
	}{
		{name: "implementors", env: ImplementorsEnvelope("core::hash::Hash", NewContribution())},
		{name: "sidebar", env: SidebarEnvelope("syn", NewSidebarItems())},
		{name: "missing page", env: ImplementorsEnvelope("", NewContribution()), invalid: true},
		{name: "tag mismatch", env: Envelope{Kind: PayloadSidebar, Page: "syn", Implementors: NewContribution()}, malformed: true},
		{name: "unknown kind", env: Envelope{Page: "syn"}, malformed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			switch {
			case tt.malformed:
				assert.True(t, errors.IsMalformed(err), "got %v", err)
			case tt.invalid:
				assert.True(t, errors.IsValidationError(err), "got %v", err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePayloadKind(t *testing.T) {
	assert.Equal(t, PayloadImplementors, ParsePayloadKind("implementors"))
	assert.Equal(t, PayloadSidebar, ParsePayloadKind("sidebar"))
	assert.Equal(t, PayloadUnknown, ParsePayloadKind("search-index"))
	assert.Equal(t, "sidebar", PayloadSidebar.String())
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ItemKind is a sidebar category label such as "enum", "fn" or "struct".
type ItemKind string

// SidebarItem is one named entry of a crate's sidebar index.
type SidebarItem struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// UnmarshalYAML accepts the two-element form [name, description] as well as a mapping.
func (i *SidebarItem) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []string
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) == 0 || len(pair) > 2 {
			return fmt.Errorf("line %d: sidebar item must be [name, description], got %d elements", value.Line, len(pair))
		}
		i.Name = pair[0]
		if len(pair) == 2 {
			i.Description = pair[1]
		}
		return nil
	case yaml.ScalarNode:
		i.Name = value.Value
		return nil
	}
	type plain SidebarItem
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*i = SidebarItem(p)
	return nil
}

// SidebarItems maps item kinds to their entries, keeping kind and entry order.
// The zero value is an empty index.
type SidebarItems struct {
	kinds []ItemKind
	items map[ItemKind][]SidebarItem
}

// NewSidebarItems creates an empty sidebar index.
func NewSidebarItems() *SidebarItems {
	return &SidebarItems{items: make(map[ItemKind][]SidebarItem)}
}

// Add appends entries under kind, registering the kind on first use.
func (s *SidebarItems) Add(kind ItemKind, items ...SidebarItem) *SidebarItems {
	if s.items == nil {
		s.items = make(map[ItemKind][]SidebarItem)
	}
	if _, ok := s.items[kind]; !ok {
		s.kinds = append(s.kinds, kind)
		s.items[kind] = make([]SidebarItem, 0, len(items))
	}
	s.items[kind] = append(s.items[kind], items...)
	return s
}

// Merge concatenates other into s and returns s.
func (s *SidebarItems) Merge(other *SidebarItems) *SidebarItems {
	if other == nil {
		return s
	}
	for _, kind := range other.kinds {
		s.Add(kind, other.items[kind]...)
	}
	return s
}

// Kinds returns the kinds in first-insertion order.
func (s *SidebarItems) Kinds() []ItemKind {
	if s == nil {
		return nil
	}
	out := make([]ItemKind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Items returns a copy of the entries for kind.
func (s *SidebarItems) Items(kind ItemKind) []SidebarItem {
	if s == nil {
		return nil
	}
	items, ok := s.items[kind]
	if !ok {
		return nil
	}
	out := make([]SidebarItem, len(items))
	copy(out, items)
	return out
}

// Len returns the number of kinds.
func (s *SidebarItems) Len() int {
	if s == nil {
		return 0
	}
	return len(s.kinds)
}

// Clone returns a deep copy.
func (s *SidebarItems) Clone() *SidebarItems {
	return NewSidebarItems().Merge(s)
}

// MarshalYAML emits a mapping in kind order.
func (s *SidebarItems) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kind := range s.kinds {
		var items yaml.Node
		if err := items.Encode(s.items[kind]); err != nil {
			return nil, fmt.Errorf("failed to encode %q items: %w", kind, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(kind)},
			&items,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of kind to a sequence of items in document order.
func (s *SidebarItems) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar items must be a mapping of kind to items", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var items []SidebarItem
		if err := val.Decode(&items); err != nil {
			return fmt.Errorf("kind %q: %w", key.Value, err)
		}
		s.Add(ItemKind(key.Value), items...)
	}
	return nil
}

// MarshalJSON emits an object in kind order.
func (s *SidebarItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kind := range s.kinds {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(kind))
		if err != nil {
			return nil, err
		}
		items, err := json.Marshal(s.items[kind])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

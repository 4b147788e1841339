/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CrateName identifies an independent unit of documented code contributing to a page.
type CrateName string

// ImplementorRecord states that a type provides the capability documented by a page.
type ImplementorRecord struct {
	// Crate is the crate the implementing type lives in.
	Crate CrateName `json:"crate,omitempty" yaml:"crate,omitempty" dynamodbav:"Crate,omitempty"`
	// Kind is the item kind of the implementing type (struct, enum, primitive...).
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty" dynamodbav:"Kind,omitempty"`
	// Path is the qualified path of the implementing type, e.g. "pest::Position".
	Path string `json:"path,omitempty" yaml:"path,omitempty" dynamodbav:"Path,omitempty"`
	// Label is the display label including generics, e.g. "Position<'i>".
	Label string `json:"label,omitempty" yaml:"label,omitempty" dynamodbav:"Label,omitempty"`
	// Anchor is the relative link to the type's documentation.
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty" dynamodbav:"Anchor,omitempty"`
	// Raw is the pre-rendered fragment the record was decoded from, if any.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty" dynamodbav:"Raw,omitempty"`
}

// RawRecord wraps an opaque pre-rendered fragment.
func RawRecord(raw string) ImplementorRecord {
	return ImplementorRecord{Raw: raw}
}

// Key is the identity used for duplicate detection within a crate.
// A record naming a path is identified by kind, path and label, whichever
// form it was decoded from; otherwise the raw fragment identifies it.
// An empty key marks a record that carries no information.
func (r ImplementorRecord) Key() string {
	switch {
	case r.Path != "":
		return strings.Join([]string{r.Kind, r.Path, r.Label}, "|")
	case r.Raw != "":
		return r.Raw
	case r.Kind == "" && r.Label == "" && r.Anchor == "":
		return ""
	}
	return strings.Join([]string{r.Kind, r.Path, r.Label, r.Anchor}, "|")
}

// String returns the label, falling back to the path and then the raw fragment.
func (r ImplementorRecord) String() string {
	switch {
	case r.Label != "":
		return r.Label
	case r.Path != "":
		return r.Path
	default:
		return r.Raw
	}
}

// UnmarshalYAML accepts either a plain string (an opaque fragment) or a mapping.
func (r *ImplementorRecord) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Raw = value.Value
		return nil
	}
	type plain ImplementorRecord
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = ImplementorRecord(p)
	return nil
}

// Contribution maps crate names to ordered implementor records.
// The zero value is an empty contribution.
type Contribution struct {
	crates  []CrateName
	records map[CrateName][]ImplementorRecord
}

// NewContribution creates an empty contribution.
func NewContribution() *Contribution {
	return &Contribution{records: make(map[CrateName][]ImplementorRecord)}
}

// SingleContribution builds the one-entry contribution a crate hands off.
func SingleContribution(crate CrateName, records ...ImplementorRecord) *Contribution {
	return NewContribution().Add(crate, records...)
}

// Add appends records to crate, registering the crate on first use.
// Records without a crate are stamped with it.
func (c *Contribution) Add(crate CrateName, records ...ImplementorRecord) *Contribution {
	if c.records == nil {
		c.records = make(map[CrateName][]ImplementorRecord)
	}
	if _, ok := c.records[crate]; !ok {
		c.crates = append(c.crates, crate)
		c.records[crate] = make([]ImplementorRecord, 0, len(records))
	}
	for _, rec := range records {
		if rec.Crate == "" {
			rec.Crate = crate
		}
		c.records[crate] = append(c.records[crate], rec)
	}
	return c
}

// Merge concatenates other into c, crate by crate, and returns c.
func (c *Contribution) Merge(other *Contribution) *Contribution {
	if other == nil {
		return c
	}
	for _, crate := range other.crates {
		c.Add(crate, other.records[crate]...)
	}
	return c
}

// Crates returns the crate names in first-insertion order.
func (c *Contribution) Crates() []CrateName {
	if c == nil {
		return nil
	}
	out := make([]CrateName, len(c.crates))
	copy(out, c.crates)
	return out
}

// Records returns a copy of the records for crate.
func (c *Contribution) Records(crate CrateName) []ImplementorRecord {
	if c == nil {
		return nil
	}
	recs, ok := c.records[crate]
	if !ok {
		return nil
	}
	out := make([]ImplementorRecord, len(recs))
	copy(out, recs)
	return out
}

// Has reports whether crate is present.
func (c *Contribution) Has(crate CrateName) bool {
	if c == nil {
		return false
	}
	_, ok := c.records[crate]
	return ok
}

// Len returns the number of crates.
func (c *Contribution) Len() int {
	if c == nil {
		return 0
	}
	return len(c.crates)
}

// RecordCount returns the number of records across all crates.
func (c *Contribution) RecordCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, recs := range c.records {
		n += len(recs)
	}
	return n
}

// Empty reports whether the contribution carries no crates.
func (c *Contribution) Empty() bool { return c.Len() == 0 }

// Clone returns a deep copy.
func (c *Contribution) Clone() *Contribution {
	return NewContribution().Merge(c)
}

// Map returns the contribution as a plain map, losing crate order.
func (c *Contribution) Map() map[CrateName][]ImplementorRecord {
	out := make(map[CrateName][]ImplementorRecord, c.Len())
	for _, crate := range c.Crates() {
		out[crate] = c.Records(crate)
	}
	return out
}

// MarshalYAML emits a mapping in crate order.
func (c *Contribution) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, crate := range c.crates {
		var recs yaml.Node
		if err := recs.Encode(c.records[crate]); err != nil {
			return nil, fmt.Errorf("failed to encode records of %q: %w", crate, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(crate)},
			&recs,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of crate name to a sequence of records,
// keeping the document's crate order.
func (c *Contribution) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: implementors must be a mapping of crate to records", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var recs []ImplementorRecord
		if err := val.Decode(&recs); err != nil {
			return fmt.Errorf("crate %q: %w", key.Value, err)
		}
		c.Add(CrateName(key.Value), recs...)
	}
	return nil
}

// MarshalJSON emits an object in crate order.
func (c *Contribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, crate := range c.crates {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(crate))
		if err != nil {
			return nil, err
		}
		recs, err := json.Marshal(c.records[crate])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(recs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

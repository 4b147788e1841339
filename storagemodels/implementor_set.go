/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// ImplementorSet is the persisted form of one crate's records on one page.
type ImplementorSet struct {
	// Trait is the page the records belong to, e.g. "core::hash::Hash".
	Trait string `json:"Trait" yaml:"trait" dynamodbav:"Trait"`
	// Crate is the contributing crate.
	Crate string `json:"Crate" yaml:"crate" dynamodbav:"Crate"`
	// Position is the crate's first-observed position on the page.
	Position int `json:"Position" yaml:"position" dynamodbav:"Position"`
	// Records are the crate's implementors in registry order.
	Records []ImplementorRecord `json:"Records" yaml:"records" dynamodbav:"Records"`
	// UpdatedAt is an RFC 3339 timestamp.
	// Format: date-time
	UpdatedAt string `json:"UpdatedAt,omitempty" yaml:"updatedAt,omitempty" dynamodbav:"UpdatedAt,omitempty"`
}

// Key returns the composite "trait|crate" key used by the datastores.
func (s ImplementorSet) Key() string {
	return s.Trait + KeySeparator + s.Crate
}

// Touch stamps UpdatedAt with t.
func (s *ImplementorSet) Touch(t time.Time) {
	s.UpdatedAt = strfmt.DateTime(t.UTC()).String()
}

// UpdatedTime parses UpdatedAt.
func (s ImplementorSet) UpdatedTime() (time.Time, error) {
	dt, err := strfmt.ParseDateTime(s.UpdatedAt)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time(dt), nil
}

// KeySeparator joins the parts of a composite string key.
const KeySeparator = "|"

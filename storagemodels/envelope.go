/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/suparena/docregistry/errors"
)

// PayloadKind tags the shape an Envelope carries.
type PayloadKind int

const (
	PayloadUnknown PayloadKind = iota
	PayloadImplementors
	PayloadSidebar
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadImplementors:
		return "implementors"
	case PayloadSidebar:
		return "sidebar"
	default:
		return "unknown"
	}
}

// ParsePayloadKind maps a manifest label to a PayloadKind.
func ParsePayloadKind(s string) PayloadKind {
	switch s {
	case "implementors", "implementor":
		return PayloadImplementors
	case "sidebar", "sidebar-items":
		return PayloadSidebar
	default:
		return PayloadUnknown
	}
}

// Envelope carries one payload together with the page it targets.
// Page is the trait path for implementor payloads and the crate for sidebars.
type Envelope struct {
	Kind         PayloadKind
	Page         string
	Source       string
	Implementors *Contribution
	Sidebar      *SidebarItems
}

// ImplementorsEnvelope wraps a contribution for the page documenting trait.
func ImplementorsEnvelope(trait string, c *Contribution) Envelope {
	return Envelope{Kind: PayloadImplementors, Page: trait, Implementors: c}
}

// SidebarEnvelope wraps a sidebar index for crate.
func SidebarEnvelope(crate string, items *SidebarItems) Envelope {
	return Envelope{Kind: PayloadSidebar, Page: crate, Sidebar: items}
}

// Validate checks that the envelope's tag matches its payload.
func (e Envelope) Validate() error {
	if e.Page == "" {
		return errors.NewValidationError("page", "must not be empty")
	}
	switch e.Kind {
	case PayloadImplementors:
		if e.Implementors == nil {
			return errors.NewMalformedPayloadError(e.Source, "implementors envelope without contribution")
		}
	case PayloadSidebar:
		if e.Sidebar == nil {
			return errors.NewMalformedPayloadError(e.Source, "sidebar envelope without items")
		}
	default:
		return errors.NewMalformedPayloadError(e.Source, "unknown payload kind")
	}
	return nil
}

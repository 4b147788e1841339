/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

// Manifest is the file form of one envelope.
type Manifest struct {
	Kind         string                      `json:"kind" yaml:"kind"`
	Trait        string                      `json:"trait,omitempty" yaml:"trait,omitempty"`
	Crate        string                      `json:"crate,omitempty" yaml:"crate,omitempty"`
	Implementors *storagemodels.Contribution `json:"implementors,omitempty" yaml:"implementors,omitempty"`
	Items        *storagemodels.SidebarItems `json:"items,omitempty" yaml:"items,omitempty"`
}

// ManifestFor converts an envelope to its file form.
func ManifestFor(env storagemodels.Envelope) Manifest {
	m := Manifest{Kind: env.Kind.String()}
	switch env.Kind {
	case storagemodels.PayloadImplementors:
		m.Trait = env.Page
		m.Implementors = env.Implementors
	case storagemodels.PayloadSidebar:
		m.Crate = env.Page
		m.Items = env.Sidebar
	}
	return m
}

// Envelope converts the manifest to an envelope. A missing kind is inferred
// from which payload is present.
func (m Manifest) Envelope(source string) (storagemodels.Envelope, error) {
	kind := storagemodels.ParsePayloadKind(m.Kind)
	if m.Kind == "" {
		switch {
		case m.Implementors != nil && m.Items == nil:
			kind = storagemodels.PayloadImplementors
		case m.Items != nil && m.Implementors == nil:
			kind = storagemodels.PayloadSidebar
		}
	}

	var env storagemodels.Envelope
	switch kind {
	case storagemodels.PayloadImplementors:
		env = storagemodels.ImplementorsEnvelope(m.Trait, Enrich(m.Implementors))
	case storagemodels.PayloadSidebar:
		env = storagemodels.SidebarEnvelope(m.Crate, m.Items)
	default:
		return storagemodels.Envelope{}, errors.NewMalformedPayloadError(source, fmt.Sprintf("unknown manifest kind %q", m.Kind))
	}
	env.Source = source
	if err := env.Validate(); err != nil {
		if errors.IsMalformed(err) {
			return storagemodels.Envelope{}, err
		}
		return storagemodels.Envelope{}, errors.WrapMalformedPayload(source, "invalid manifest", err)
	}
	return env, nil
}

// decodeManifests reads every YAML document in data. JSON input is read the
// same way; a top-level sequence holds several manifests.
func decodeManifests(source string, data []byte) ([]storagemodels.Envelope, error) {
	var envs []storagemodels.Envelope
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for doc := 0; ; doc++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapMalformedPayload(source, fmt.Sprintf("document %d", doc+1), err)
		}
		root := &node
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}

		nodes := []*yaml.Node{root}
		if root.Kind == yaml.SequenceNode {
			nodes = root.Content
		}
		for _, n := range nodes {
			var m Manifest
			if err := n.Decode(&m); err != nil {
				return nil, errors.WrapMalformedPayload(source, fmt.Sprintf("document %d, line %d", doc+1, n.Line), err)
			}
			env, err := m.Envelope(source)
			if err != nil {
				return nil, err
			}
			envs = append(envs, env)
		}
	}
	if len(envs) == 0 {
		return nil, errors.NewMalformedPayloadError(source, "no manifests found")
	}
	return envs, nil
}

// Format selects the output encoding of Encode.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.NewValidationError("format", fmt.Sprintf("unsupported format %q (want yaml or json)", s))
}

// Encode writes envelopes as manifests: one YAML document each, or a single
// indented JSON array. The output can be read back by Load.
func Encode(w io.Writer, format Format, envs []storagemodels.Envelope) error {
	manifests := make([]Manifest, 0, len(envs))
	for _, env := range envs {
		manifests = append(manifests, ManifestFor(env))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(manifests)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for i := range manifests {
			if err := enc.Encode(&manifests[i]); err != nil {
				return fmt.Errorf("failed to encode manifest %d: %w", i, err)
			}
		}
		return enc.Close()
	}
	return errors.NewValidationError("format", fmt.Sprintf("unsupported format %q", format))
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/storagemodels"
)

var (
	implementorLine = regexp.MustCompile(`^\s*implementors\[("(?:[^"\\]|\\.)*")\]\s*=\s*(\[.*\])\s*;\s*$`)
	trailingComma   = regexp.MustCompile(`,\s*\]$`)
)

const sidebarCall = "initSidebarItems("

func isLegacySidebar(data []byte) bool {
	return bytes.Contains(data, []byte(sidebarCall))
}

func isLegacyImplementors(data []byte) bool {
	return bytes.Contains(data, []byte("implementors["))
}

// decodeLegacyImplementors reads the per-crate assignments of a legacy
// implementors file. The page is the trait path derived from source.
func decodeLegacyImplementors(source string, data []byte) (storagemodels.Envelope, error) {
	trait := TraitFromPath(source)
	if trait == "" {
		return storagemodels.Envelope{}, errors.NewMalformedPayloadError(source, "cannot derive trait path from file name")
	}

	c := storagemodels.NewContribution()
	for n, line := range strings.Split(string(data), "\n") {
		m := implementorLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var crate string
		if err := json.Unmarshal([]byte(m[1]), &crate); err != nil {
			return storagemodels.Envelope{}, errors.WrapMalformedPayload(source, lineReason(n, "invalid crate name"), err)
		}
		var fragments []string
		if err := json.Unmarshal([]byte(trailingComma.ReplaceAllString(m[2], "]")), &fragments); err != nil {
			return storagemodels.Envelope{}, errors.WrapMalformedPayload(source, lineReason(n, "invalid implementor list"), err)
		}
		records := make([]storagemodels.ImplementorRecord, 0, len(fragments))
		for _, f := range fragments {
			records = append(records, ParseRecord(storagemodels.CrateName(crate), f))
		}
		c.Add(storagemodels.CrateName(crate), records...)
	}
	if c.Empty() {
		return storagemodels.Envelope{}, errors.NewMalformedPayloadError(source, "no implementor assignments found")
	}

	env := storagemodels.ImplementorsEnvelope(trait, c)
	env.Source = source
	return env, nil
}

// decodeLegacySidebar reads the object passed to initSidebarItems. The page is
// the crate named by the directory holding source.
func decodeLegacySidebar(source string, data []byte) (storagemodels.Envelope, error) {
	crate := filepath.Base(filepath.Dir(source))
	if crate == "." || crate == string(filepath.Separator) || crate == "" {
		return storagemodels.Envelope{}, errors.NewMalformedPayloadError(source, "cannot derive crate from file location")
	}

	start := bytes.Index(data, []byte(sidebarCall))
	end := bytes.LastIndexByte(data, ')')
	if start < 0 || end < start+len(sidebarCall) {
		return storagemodels.Envelope{}, errors.NewMalformedPayloadError(source, "unterminated initSidebarItems call")
	}

	items := storagemodels.NewSidebarItems()
	if err := yaml.Unmarshal(data[start+len(sidebarCall):end], items); err != nil {
		return storagemodels.Envelope{}, errors.WrapMalformedPayload(source, "invalid sidebar object", err)
	}

	env := storagemodels.SidebarEnvelope(crate, items)
	env.Source = source
	return env, nil
}

// TraitFromPath derives a trait path from the location of a legacy
// implementors file: implementors/core/hash/trait.Hash.js is core::hash::Hash.
// Without an implementors directory only the trait name is returned.
func TraitFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return ""
	}

	var segments []string
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] == "implementors" {
			segments = append(segments, parts[i+1:len(parts)-1]...)
			break
		}
	}
	return strings.Join(append(segments, name), "::")
}

func lineReason(n int, reason string) string {
	return fmt.Sprintf("line %d: %s", n+1, reason)
}

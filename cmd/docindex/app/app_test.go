/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suparena/docregistry"
	"github.com/suparena/docregistry/datastore"
	"github.com/suparena/docregistry/datastore/mock"
	"github.com/suparena/docregistry/processor"
	"github.com/suparena/docregistry/storagemodels"
)

const pestManifest = `kind: implementors
trait: core::hash::Hash
implementors:
  pest:
    - kind: struct
      path: pest::Position
      label: Position<'i>
`

const quoteManifest = `kind: implementors
trait: core::hash::Hash
implementors:
  quote:
    - kind: struct
      path: quote::Ident
      label: Ident
  pest:
    - kind: struct
      path: pest::Position
      label: Position<'i>
`

func writePayloads(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(pestManifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(quoteManifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("kind: [\n"), 0o600))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadCommandMergesPages(t *testing.T) {
	dir := writePayloads(t)

	out, logs, err := execute(t, "load", dir)
	require.NoError(t, err)

	var m processor.Manifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	assert.Equal(t, "implementors", m.Kind)
	assert.Equal(t, "core::hash::Hash", m.Trait)
	require.NotNil(t, m.Implementors)
	assert.Equal(t, []storagemodels.CrateName{"pest", "quote"}, m.Implementors.Crates())
	assert.Len(t, m.Implementors.Records("pest"), 1, "resubmitted records are deduplicated")

	assert.Contains(t, logs, "broken.yaml")
	assert.Contains(t, logs, "Payloads merged.")
}

func TestLoadCommandJSON(t *testing.T) {
	dir := writePayloads(t)

	out, _, err := execute(t, "load", "--format", "json", dir)
	require.NoError(t, err)

	var manifests []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &manifests))
	require.Len(t, manifests, 1)
	assert.Equal(t, "core::hash::Hash", manifests[0]["trait"])
}

func TestLoadCommandErrors(t *testing.T) {
	_, _, err := execute(t, "load")
	assert.Error(t, err, "at least one path is required")

	_, _, err = execute(t, "load", "--format", "toml", t.TempDir())
	assert.Error(t, err)

	_, _, err = execute(t, "load", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadCommandSave(t *testing.T) {
	dir := writePayloads(t)
	store := mock.New[storagemodels.ImplementorSet]()

	var gotCfg Config
	orig := newSetStore
	newSetStore = func(cfg Config) (datastore.DataStore[storagemodels.ImplementorSet], error) {
		gotCfg = cfg
		return store, nil
	}
	t.Cleanup(func() { newSetStore = orig })

	t.Setenv("DOCINDEX_AWS_REGION", "eu-west-1")
	_, logs, err := execute(t, "load", "--save", "--table", "docs", dir)
	require.NoError(t, err)

	assert.Equal(t, "docs", gotCfg.Table)
	assert.Equal(t, "eu-west-1", gotCfg.Region)
	assert.Equal(t, 2, store.Count())
	assert.Contains(t, logs, "Snapshots saved.")

	set, err := store.GetOne(t.Context(), storagemodels.ImplementorSet{Trait: "core::hash::Hash", Crate: "quote"}.Key())
	require.NoError(t, err)
	assert.Equal(t, 1, set.Position)
}

func TestSaveWithoutTable(t *testing.T) {
	_, err := newSetStore(Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)

	var info docregistry.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, docregistry.Version, info.Version)

	out, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "docindex version "+docregistry.Version)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	flags.String("table", "", "")
	flags.String("region", "", "")
	return flags
}

func TestConfigDefaults(t *testing.T) {
	v, err := newViper(testFlags())
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Empty(t, cfg.Table)
}

func TestConfigEnvAndFlags(t *testing.T) {
	t.Setenv("DOCINDEX_DDB_TABLE", "from-env")
	t.Setenv("DOCINDEX_LOG_LEVEL", "debug")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--table", "from-flag"}))

	v, err := newViper(flags)
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, "from-flag", cfg.Table, "flags win over the environment")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "DOCINDEX_DOTENV_TEST_TABLE"
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte(key+"=snapshots\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(key) })

	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env"), file))
	assert.Equal(t, "snapshots", os.Getenv(key))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "page", "core::hash::Hash")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

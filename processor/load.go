/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/suparena/docregistry/errors"
	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/storagemodels"
)

var supportedExt = map[string]bool{
	".js":   true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

// DecodeBytes decodes the payloads held by data. source is the file the data
// came from; it selects the decoder and names the page of legacy files.
func DecodeBytes(source string, data []byte) ([]storagemodels.Envelope, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml", ".json":
		return decodeManifests(source, data)
	}

	switch {
	case isLegacySidebar(data):
		env, err := decodeLegacySidebar(source, data)
		if err != nil {
			return nil, err
		}
		return []storagemodels.Envelope{env}, nil
	case isLegacyImplementors(data):
		env, err := decodeLegacyImplementors(source, data)
		if err != nil {
			return nil, err
		}
		return []storagemodels.Envelope{env}, nil
	}
	return decodeManifests(source, data)
}

// DecodeFile reads and decodes one payload file.
func DecodeFile(path string) ([]storagemodels.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file %s: %w", path, err)
	}
	return DecodeBytes(path, data)
}

// Load decodes every payload found at paths. Directories are walked in
// lexical order and only files with a known extension are read from them.
// Malformed files are logged and skipped; I/O errors abort the load.
func Load(ctx context.Context, paths ...string) ([]storagemodels.Envelope, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExt[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	var envs []storagemodels.Envelope
	skipped := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decoded, err := DecodeFile(f)
		if errors.IsMalformed(err) {
			skipped++
			logger.Warn("Skipping malformed payload file.", "file", f, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("Decoded payload file.", "file", f, "payloads", len(decoded))
		envs = append(envs, decoded...)
	}

	logger.Info("Payload files loaded.", "files", len(files), "payloads", len(envs), "skipped", skipped)
	return envs, nil
}

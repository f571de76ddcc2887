// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textatlas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if c.AtlasWidth != 1024 || c.AtlasHeight != 1024 || c.WorkingSize != 64 || c.Range != 4 {
		t.Errorf("DefaultConfig() = %+v", c)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := error(&ConfigError{Field: "Range", Reason: "must be positive"})
	if got, want := err.Error(), "textatlas: invalid config.Range: must be positive"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFileFontLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	load := FileFontLoader()

	small, err := load(path, 12)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The parsed file is reused for the second size.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	large, err := load(path, 24)
	if err != nil {
		t.Fatalf("load after remove: %v", err)
	}
	if small.ID() != large.ID() {
		t.Errorf("IDs differ: %q %q", small.ID(), large.ID())
	}
	if small.Size() != 12 || large.Size() != 24 {
		t.Errorf("sizes = %d, %d", small.Size(), large.Size())
	}
	if small.Metrics().Ascender >= large.Metrics().Ascender {
		t.Error("larger size does not have a larger ascender")
	}

	if _, err := load(filepath.Join(t.TempDir(), "missing.ttf"), 12); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v, want fs.ErrNotExist", err)
	}
}

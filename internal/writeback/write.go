// Package writeback persists content documents: structural validation
// followed by an atomic file replace.
package writeback

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/vitrine/internal/content"
)

// WriteFile replaces path with data atomically: data is written to a temp
// file in the same directory, then renamed over path. An existing file keeps
// its permissions; a new one gets 0644.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".vitrine-write-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	_ = os.Chmod(tmpName, mode)

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}

// Save validates tree and writes it to path as indented JSON.
func Save(path string, tree content.Value) error {
	if err := Validate(tree); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	data := append(content.Encode(tree, 2), '\n')
	return WriteFile(path, data)
}

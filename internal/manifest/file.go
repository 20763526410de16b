package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgjs/create-package-json/internal/branding"
)

// ErrNotFound is returned by Read when no manifest exists at the path.
var ErrNotFound = errors.New("manifest not found")

// Path returns the manifest path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, branding.ManifestFile())
}

// Read reads and parses the manifest at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// ReadDir reads the manifest inside dir.
func ReadDir(dir string) (*Document, error) {
	return Read(Path(dir))
}

// Write encodes doc with the given indentation and writes it to path,
// creating parent directories as needed.
func Write(path string, doc *Document, spaces int) error {
	data, err := doc.Indent(spaces)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

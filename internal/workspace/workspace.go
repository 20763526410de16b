// Package workspace locates npm workspace roots and resolves their member
// globs against the filesystem.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pkgjs/create-package-json/internal/branding"
	"github.com/pkgjs/create-package-json/internal/manifest"
)

// DefaultPattern is used by Search when no patterns are given.
const DefaultPattern = "**/*"

const workspacesKey = "workspaces"

// Root is a located workspace root.
type Root struct {
	Dir      string
	Manifest *manifest.Document // nil when no manifest was found
	Skipped  []string           // manifests passed over because they could not be read
}

// Declares reports whether the root manifest has a workspaces field.
func (r *Root) Declares() bool {
	return r.Manifest != nil && r.Manifest.Has(workspacesKey)
}

// Patterns returns the root's workspace globs.
func (r *Root) Patterns() []string {
	if r.Manifest == nil {
		return nil
	}
	return Patterns(r.Manifest)
}

// FindRoot walks up from cwd toward boundary (the filesystem root when
// empty) looking for the manifest that owns cwd. The nearest readable
// manifest wins unless an ancestor up to boundary declares workspaces.
// Unreadable manifests are passed over and listed in Root.Skipped.
func FindRoot(cwd, boundary string) *Root {
	cwd = filepath.Clean(cwd)
	if boundary != "" {
		boundary = filepath.Clean(boundary)
	}

	var first *Root
	var skipped []string
	for dir := cwd; ; {
		doc, err := manifest.ReadDir(dir)
		switch {
		case err == nil:
			candidate := &Root{Dir: dir, Manifest: doc, Skipped: skipped}
			if candidate.Declares() {
				return candidate
			}
			if first == nil {
				if dir == boundary {
					return candidate
				}
				first = candidate
			}
		case !errors.Is(err, manifest.ErrNotFound):
			skipped = append(skipped, manifest.Path(dir))
		}

		parent := filepath.Dir(dir)
		if dir == boundary || parent == dir {
			break
		}
		dir = parent
	}

	if first != nil {
		first.Skipped = skipped
		return first
	}
	return &Root{Dir: cwd, Skipped: skipped}
}

// Patterns reads the workspaces globs of doc, accepting both the array form
// and the {"packages": [...]} object form.
func Patterns(doc *manifest.Document) []string {
	raw, ok := doc.Raw(workspacesKey)
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Packages
	}
	return nil
}

// AppendMember adds rel to the workspaces of doc, keeping the object form
// when the manifest uses it.
func AppendMember(doc *manifest.Document, rel string) error {
	patterns := append(Patterns(doc), rel)

	raw, ok := doc.Raw(workspacesKey)
	if ok {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err == nil {
			enc, err := json.Marshal(patterns)
			if err != nil {
				return err
			}
			obj["packages"] = enc
			return doc.Set(workspacesKey, obj)
		}
	}
	return doc.Set(workspacesKey, patterns)
}

// Matches reports whether the slash-separated relative path rel is selected
// by patterns. Later "!pattern" entries exclude earlier matches.
func Matches(patterns []string, rel string) bool {
	rel = strings.TrimPrefix(path.Clean(filepath.ToSlash(rel)), "./")
	matched := false
	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(path.Clean(strings.TrimPrefix(p, "!")), "./")
		ok, err := doublestar.Match(p, rel)
		if err != nil || !ok {
			continue
		}
		matched = !negate
	}
	return matched
}

// Search returns the sorted, slash-separated paths relative to root of the
// directories matched by patterns that contain their own manifest.
// node_modules and dot directories are never descended into.
func Search(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var found []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == root {
			return nil
		}
		name := d.Name()
		if name == "node_modules" || strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !Matches(patterns, rel) {
			return nil
		}
		if fileExists(filepath.Join(p, branding.ManifestFile())) {
			found = append(found, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching workspaces in %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}

// RelPath returns dir relative to root in slash form.
func RelPath(root, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", dir, root, err)
	}
	return filepath.ToSlash(rel), nil
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

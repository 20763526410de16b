// Package inspect gathers facts about the target directory that seed
// package.json defaults: git identity, origin remote and directory naming.
package inspect

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pkgjs/create-package-json/internal/vcs"
)

// Environment holds the values discovered around the target directory.
type Environment struct {
	Author         string
	Remote         string
	RepositoryRoot string
	DirectoryName  string
	DirectoryScope string // "@scope" when the parent directory is scope-like
}

// Inspect reads git identity, remote and repository root concurrently.
// Lookup failures leave the corresponding field empty.
func Inspect(ctx context.Context, cwd string, reader vcs.Reader) *Environment {
	env := &Environment{}
	env.DirectoryName, env.DirectoryScope = NameFromDirectory(cwd)
	if reader == nil {
		return env
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if author, err := reader.Author(gctx, cwd); err == nil {
			env.Author = author
		}
		return nil
	})
	g.Go(func() error {
		if remote, err := reader.Remote(gctx, cwd); err == nil {
			env.Remote = remote
		}
		return nil
	})
	g.Go(func() error {
		if root, err := reader.RepositoryRoot(gctx, cwd); err == nil {
			env.RepositoryRoot = root
		}
		return nil
	})
	_ = g.Wait()

	return env
}

// NameFromDirectory derives a package name from the base name of dir. When
// the parent directory starts with "@" it is returned as the implied scope.
func NameFromDirectory(dir string) (name, scope string) {
	dir = filepath.Clean(dir)
	name = filepath.Base(dir)
	parent := filepath.Base(filepath.Dir(dir))
	if strings.HasPrefix(parent, "@") && len(parent) > 1 {
		scope = parent
	}
	return name, scope
}

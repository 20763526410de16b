// Package format projects a resolved Configuration onto the manifest
// document that gets written, in the canonical key order.
package format

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pkgjs/create-package-json/internal/depspec"
	"github.com/pkgjs/create-package-json/internal/manifest"
	"github.com/pkgjs/create-package-json/internal/resolve"
	"github.com/pkgjs/create-package-json/internal/workspace"
)

// CanonicalKeys is the order of the fields this tool manages.
var CanonicalKeys = []string{
	"name", "version", "description", "main", "type", "keywords", "scripts",
	"author", "license", "repository", "private", "man", "peerDependencies",
	"workspaces",
}

// Format builds the manifest for cfg. Keys of existing that are not managed
// here follow the canonical keys in their original order. Dependency
// specifiers are validated, and the result is checked against the schema.
func Format(ctx context.Context, cfg *resolve.Configuration, existing *manifest.Document) (*manifest.Document, error) {
	if existing == nil {
		existing = manifest.New()
	}

	if err := depspec.ValidatePackageSpec(cfg.Dependencies); err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	if err := depspec.ValidatePackageSpec(cfg.DevDependencies); err != nil {
		return nil, fmt.Errorf("devDependencies: %w", err)
	}

	peers, err := mergePeers(ctx, existing, cfg.PeerDependencies)
	if err != nil {
		return nil, err
	}

	doc := manifest.New()
	set := func(key string, v any) {
		if err == nil {
			err = doc.Set(key, v)
		}
	}

	set("name", cfg.Name)
	set("version", cfg.Version)
	set("description", cfg.Description)
	set("main", cfg.Main)
	set("type", cfg.Type)
	if len(cfg.Keywords) > 0 {
		set("keywords", cfg.Keywords)
	}
	set("scripts", cfg.Scripts)
	set("author", cfg.Author)
	set("license", cfg.License)
	if repo := cfg.Repository.Normalized(); repo != nil {
		set("repository", repo)
	}
	if cfg.Private == resolve.True {
		set("private", true)
	}
	switch len(cfg.Man) {
	case 0:
	case 1:
		set("man", cfg.Man[0])
	default:
		set("man", cfg.Man)
	}
	if peers.Len() > 0 {
		set("peerDependencies", peers)
	}
	if len(cfg.Workspaces) > 0 {
		if raw, ok := existing.Raw("workspaces"); ok && slices.Equal(workspace.Patterns(existing), cfg.Workspaces) {
			set("workspaces", raw)
		} else {
			set("workspaces", cfg.Workspaces)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}

	for _, key := range existing.Keys() {
		if slices.Contains(CanonicalKeys, key) {
			continue
		}
		raw, _ := existing.Raw(key)
		if err := doc.Set(key, raw); err != nil {
			return nil, fmt.Errorf("copying %s: %w", key, err)
		}
	}

	result, err := manifest.Validate(doc)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		issues := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			issues[i] = issue.String()
		}
		return nil, fmt.Errorf("formatted manifest is invalid: %s", strings.Join(issues, "; "))
	}
	return doc, nil
}

// mergePeers keeps the existing peer ranges as written and overrides the
// names given in raws with their normalized ranges.
func mergePeers(ctx context.Context, existing *manifest.Document, raws []string) (*manifest.Document, error) {
	input, err := PeerDependencies(ctx, raws)
	if err != nil {
		return nil, err
	}

	peers := manifest.New()
	if err := existing.Get("peerDependencies", peers); err != nil {
		peers = manifest.New()
	}
	for _, name := range input.Keys() {
		raw, _ := input.Raw(name)
		if err := peers.Set(name, raw); err != nil {
			return nil, err
		}
	}
	return peers, nil
}

// PeerDependencies normalizes raw peer specifiers concurrently and merges
// them by name; a later specifier for the same name wins.
func PeerDependencies(ctx context.Context, raws []string) (*manifest.Document, error) {
	specs := make([]*depspec.Spec, len(raws))

	g, _ := errgroup.WithContext(ctx)
	for i, raw := range raws {
		g.Go(func() error {
			s, err := depspec.Normalize(raw)
			if err != nil {
				return fmt.Errorf("peerDependencies: %w", err)
			}
			if s.Name == "" {
				return fmt.Errorf("peerDependencies: %q does not name a package", raw)
			}
			specs[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	peers := manifest.New()
	for _, s := range specs {
		if err := peers.Set(s.Name, depspec.PeerRange(s)); err != nil {
			return nil, err
		}
	}
	return peers, nil
}

// Package create runs a full package.json generation: inspect the
// environment, locate the workspace, resolve options with prompting, format,
// write and install.
package create

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pkgjs/create-package-json/internal/config"
	"github.com/pkgjs/create-package-json/internal/format"
	"github.com/pkgjs/create-package-json/internal/inspect"
	"github.com/pkgjs/create-package-json/internal/installer"
	"github.com/pkgjs/create-package-json/internal/logging"
	"github.com/pkgjs/create-package-json/internal/manifest"
	"github.com/pkgjs/create-package-json/internal/prompt"
	"github.com/pkgjs/create-package-json/internal/resolve"
	"github.com/pkgjs/create-package-json/internal/vcs"
	"github.com/pkgjs/create-package-json/internal/workspace"
)

// Options configures Run. Nil collaborators get working defaults.
type Options struct {
	Input     resolve.Input
	Defaults  config.Defaults
	Prompter  prompt.Prompter     // default: answer every question with its default
	Installer installer.Installer // default: npm
	VCS       vcs.Reader          // default: go-git
	Logger    *log.Logger
	Silent    bool // suppress installer output
}

// Result is the outcome of Run.
type Result struct {
	Path        string
	Manifest    *manifest.Document // re-read from disk after installs
	Config      *resolve.Configuration
	RootUpdated bool // the workspace root manifest gained this package
}

// Run generates or updates the package.json in Input.Directory.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	logger := opts.Logger
	in := opts.Input

	dir, err := absDir(in.Directory)
	if err != nil {
		return nil, err
	}
	in.Directory = dir
	if in.WorkspaceRoot != "" {
		if in.WorkspaceRoot, err = absDir(in.WorkspaceRoot); err != nil {
			return nil, err
		}
	}

	existing := readExisting(dir, in.IgnoreExisting, logger)

	env := inspect.Inspect(ctx, dir, opts.VCS)
	logger.Debug("inspected environment", "author", env.Author, "remote", env.Remote, "repository", env.RepositoryRoot)

	ws, err := locateWorkspace(dir, in.WorkspaceRoot, env.RepositoryRoot, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("located workspace", "root", ws.Root, "declared", ws.Declared, "inferred", ws.Inferred)

	layers := resolve.Layers{
		Input:     in,
		Existing:  existing,
		Env:       env,
		Defaults:  opts.Defaults,
		Workspace: ws,
	}
	base := resolve.Preliminary(layers)

	answers, err := opts.Prompter.Prompt(ctx, resolve.Questions(in, base, ws))
	if err != nil {
		return nil, fmt.Errorf("prompting: %w", err)
	}
	if answers == nil {
		answers = prompt.Answers{}
	}
	scripts, err := resolve.CollectScripts(ctx, opts.Prompter, in, base)
	if err != nil {
		return nil, err
	}
	answers["scripts"] = scripts

	if root, ok := answers.String("workspaceRoot"); ok && root != "" && root != ws.Root {
		if root, err = absDir(root); err != nil {
			return nil, err
		}
		answers["workspaceRoot"] = root
		if ws, err = locateWorkspace(dir, root, env.RepositoryRoot, logger); err != nil {
			return nil, err
		}
	}

	layers.Workspace = ws
	layers.Answers = answers
	cfg, err := resolve.Resolve(layers)
	if err != nil {
		return nil, err
	}

	if !manifest.ValidLicense(cfg.License) {
		logger.Warn("license is not a valid SPDX expression", "license", cfg.License)
	}

	doc, err := format.Format(ctx, cfg, existing)
	if err != nil {
		return nil, err
	}

	w := &Writer{Installer: opts.Installer, Logger: logger, Silent: opts.Silent}
	res, err := w.Write(ctx, cfg, doc)
	if err != nil {
		return nil, err
	}
	res.Config = cfg
	return res, nil
}

func withDefaults(opts Options) Options {
	if opts.Prompter == nil {
		opts.Prompter = prompt.Defaults{}
	}
	if opts.Installer == nil {
		opts.Installer = &installer.NPM{Bin: opts.Defaults.NpmBin}
	}
	if opts.VCS == nil {
		opts.VCS = vcs.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return opts
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory %s: %w", dir, err)
	}
	return abs, nil
}

// readExisting loads the current manifest. Missing or unreadable manifests
// yield nil.
func readExisting(dir string, ignore bool, logger *log.Logger) *manifest.Document {
	if ignore {
		return nil
	}
	doc, err := manifest.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, manifest.ErrNotFound) {
			logger.Warn("ignoring unreadable manifest", "err", err)
		}
		return nil
	}
	return doc
}

// locateWorkspace finds the workspace root for dir, or uses explicitRoot.
// When dir is itself a root without workspaces, member candidates are
// searched for.
func locateWorkspace(dir, explicitRoot, boundary string, logger *log.Logger) (resolve.Workspace, error) {
	var root *workspace.Root
	if explicitRoot != "" {
		root = &workspace.Root{Dir: explicitRoot}
		doc, err := manifest.ReadDir(explicitRoot)
		switch {
		case err == nil:
			root.Manifest = doc
		case !errors.Is(err, manifest.ErrNotFound):
			return resolve.Workspace{}, fmt.Errorf("reading workspace root: %w", err)
		}
	} else {
		root = workspace.FindRoot(dir, boundary)
		for _, path := range root.Skipped {
			logger.Debug("skipped unreadable manifest", "path", path)
		}
	}

	ws := resolve.Workspace{
		Root:     root.Dir,
		Declared: root.Declares(),
		Patterns: root.Patterns(),
	}
	if ws.Root == dir && !ws.Declared {
		if _, err := os.Stat(dir); err == nil {
			found, err := workspace.Search(dir, nil)
			if err != nil {
				return resolve.Workspace{}, err
			}
			ws.Inferred = found
		}
	}
	return ws, nil
}

package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pkgjs/create-package-json/internal/depspec"
	"github.com/pkgjs/create-package-json/internal/installer"
	"github.com/pkgjs/create-package-json/internal/manifest"
	"github.com/pkgjs/create-package-json/internal/resolve"
	"github.com/pkgjs/create-package-json/internal/workspace"
)

// Writer persists a formatted manifest and runs the installs it implies.
type Writer struct {
	Installer installer.Installer
	Logger    *log.Logger
	Silent    bool
}

// Write stores doc in cfg.Directory, registers the package with its
// workspace root when the root's globs do not cover it yet, installs the
// requested dependencies, and returns the manifest as left on disk.
func (w *Writer) Write(ctx context.Context, cfg *resolve.Configuration, doc *manifest.Document) (*Result, error) {
	path := manifest.Path(cfg.Directory)
	if err := manifest.Write(path, doc, cfg.Spacer); err != nil {
		return nil, err
	}
	w.Logger.Info("wrote manifest", "path", path)

	res := &Result{Path: path}
	install := installer.Options{Directory: cfg.Directory, Exact: cfg.SaveExact, Silent: w.Silent}

	if cfg.WorkspaceRoot != "" && cfg.WorkspaceRoot != cfg.Directory {
		updated, inWorkspace, rel, err := w.registerMember(ctx, cfg)
		if err != nil {
			return nil, err
		}
		res.RootUpdated = updated
		if inWorkspace {
			install.Directory = cfg.WorkspaceRoot
			install.Workspace = rel
		}
	}

	if len(cfg.Dependencies) > 0 {
		install.Save = installer.SaveProd
		if err := w.install(ctx, cfg.Dependencies, install); err != nil {
			return nil, err
		}
	}
	if len(cfg.DevDependencies) > 0 {
		install.Save = installer.SaveDev
		if err := w.install(ctx, cfg.DevDependencies, install); err != nil {
			return nil, err
		}
	}

	final, err := manifest.Read(path)
	if err != nil {
		return nil, err
	}
	w.Logger.Debug("manifest dependencies",
		"dependencies", depspec.ToVersionStrings(final.StringMap("dependencies"), true),
		"devDependencies", depspec.ToVersionStrings(final.StringMap("devDependencies"), true))
	res.Manifest = final
	return res, nil
}

// registerMember appends the package to the root's workspaces when the
// root declares workspaces that do not match it, then refreshes the
// workspace install.
func (w *Writer) registerMember(ctx context.Context, cfg *resolve.Configuration) (updated, inWorkspace bool, rel string, err error) {
	root, err := manifest.ReadDir(cfg.WorkspaceRoot)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return false, false, "", nil
		}
		return false, false, "", fmt.Errorf("reading workspace root: %w", err)
	}
	if !root.Has("workspaces") {
		return false, false, "", nil
	}

	rel, err = workspace.RelPath(cfg.WorkspaceRoot, cfg.Directory)
	if err != nil {
		return false, false, "", err
	}
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return false, false, "", fmt.Errorf("%s is outside workspace root %s", cfg.Directory, cfg.WorkspaceRoot)
	}
	if workspace.Matches(workspace.Patterns(root), rel) {
		return false, true, rel, nil
	}

	if err := workspace.AppendMember(root, rel); err != nil {
		return false, false, "", fmt.Errorf("updating workspace root: %w", err)
	}
	rootPath := manifest.Path(cfg.WorkspaceRoot)
	if err := manifest.Write(rootPath, root, cfg.Spacer); err != nil {
		return false, false, "", err
	}
	w.Logger.Info("added workspace", "root", rootPath, "workspace", rel)

	if err := w.install(ctx, nil, installer.Options{Directory: cfg.WorkspaceRoot, Silent: w.Silent}); err != nil {
		return true, true, rel, err
	}
	return true, true, rel, nil
}

func (w *Writer) install(ctx context.Context, specs []string, opts installer.Options) error {
	for _, raw := range specs {
		if s, err := depspec.Parse(raw); err == nil {
			w.Logger.Debug("install", "spec", raw, "type", s.Type, "purl", s.PURL(), "save", opts.Save)
		}
	}
	w.Logger.Debug("running installer", "dir", opts.Directory, "args", installer.Args(specs, opts))

	out, err := w.Installer.Install(ctx, specs, opts)
	if err != nil {
		return err
	}
	if out != nil && out.ExitCode != 0 {
		return fmt.Errorf("install %s exited with code %d: %s", strings.Join(specs, " "), out.ExitCode, strings.TrimSpace(out.Stderr))
	}
	return nil
}

// Package vcs reads author identity and remote information from git
// configuration without shelling out to the git binary.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// Reader is the subset of git information used to seed package.json fields.
type Reader interface {
	// Author returns "name <email>" (or "name") from user.name/user.email,
	// or "" when no identity is configured.
	Author(ctx context.Context, dir string) (string, error)
	// Remote returns the origin URL of the repository rooted at dir, or ""
	// when there is none.
	Remote(ctx context.Context, dir string) (string, error)
	// RepositoryRoot returns the top level of the repository containing dir,
	// or "" when dir is not inside one.
	RepositoryRoot(ctx context.Context, dir string) (string, error)
}

// Git implements Reader with go-git.
type Git struct{}

// New returns a go-git backed Reader.
func New() *Git { return &Git{} }

// Author resolves the identity git would use in dir: repository-local
// config merged over the user's global config.
func (g *Git) Author(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cfg, err := scopedConfig(dir)
	if err != nil {
		return "", err
	}
	return FormatAuthor(cfg.User.Name, cfg.User.Email), nil
}

// Remote returns the "origin" URL of the repository whose .git lives in dir.
// GitHub SSH URLs are rewritten to https.
func (g *Git) Remote(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("opening repository: %w", err)
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return NormalizeRemote(urls[0]), nil
}

// RepositoryRoot walks up from dir to the nearest existing directory, then
// returns the worktree root of the repository containing it.
func (g *Git) RepositoryRoot(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := existingDir(dir)
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("opening repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", nil
		}
		return "", fmt.Errorf("reading worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

func existingDir(dir string) string {
	dir = filepath.Clean(dir)
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			if fi, err := os.Stat(resolved); err == nil && fi.IsDir() {
				return resolved
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

func scopedConfig(dir string) (*config.Config, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		cfg, err := repo.ConfigScoped(config.GlobalScope)
		if err != nil {
			return nil, fmt.Errorf("reading git config: %w", err)
		}
		return cfg, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("reading global git config: %w", err)
	}
	return cfg, nil
}

// FormatAuthor joins a git identity into package.json person form.
func FormatAuthor(name, email string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return ""
	}
	if email == "" {
		return name
	}
	return name + " <" + email + ">"
}

// NormalizeRemote rewrites GitHub SSH remotes to their https form.
func NormalizeRemote(url string) string {
	if rest, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		return "https://github.com/" + rest
	}
	return url
}

// Static is a Reader returning fixed values.
type Static struct {
	AuthorValue string
	RemoteValue string
	RootValue   string
}

func (s Static) Author(context.Context, string) (string, error) { return s.AuthorValue, nil }
func (s Static) Remote(context.Context, string) (string, error) { return s.RemoteValue, nil }
func (s Static) RepositoryRoot(context.Context, string) (string, error) { return s.RootValue, nil }

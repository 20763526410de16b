package installer

import (
	"context"
	"strings"
)

// Save modes.
const (
	SaveProd = "prod"
	SaveDev  = "dev"
	SaveNone = "none"
)

// Options controls a single install invocation.
type Options struct {
	Save      string // SaveProd (default), SaveDev or SaveNone
	Directory string // working directory for the package manager
	Exact     bool   // pin exact versions
	Workspace string // workspace member path relative to Directory
	Silent    bool   // do not stream output
}

// Installer adds packages to the manifest in Options.Directory.
type Installer interface {
	// Install adds specs. Nil or empty specs run a plain install of what
	// the manifest already declares.
	Install(ctx context.Context, specs []string, opts Options) (*Output, error)
}

// Output captures the result of an install.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Args builds the npm argument list for an install.
func Args(specs []string, opts Options) []string {
	args := []string{"i"}
	if len(specs) > 0 {
		switch opts.Save {
		case SaveNone:
			args = append(args, "--no-save")
		case SaveDev:
			args = append(args, "--save-dev")
		default:
			args = append(args, "--save-prod")
		}
		if opts.Exact && opts.Save != SaveNone {
			args = append(args, "--save-exact")
		}
	}
	if opts.Workspace != "" {
		args = append(args, "--workspace="+opts.Workspace)
	}
	return append(args, specs...)
}

// SanitizedEnv drops npm_* variables inherited from a parent npm process,
// so npm honours the configuration of the directory it runs in.
func SanitizedEnv(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "npm_") {
			continue
		}
		out = append(out, kv)
	}
	return out
}

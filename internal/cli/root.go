package cli

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/pkgjs/create-package-json/internal/branding"
	"github.com/pkgjs/create-package-json/internal/config"
	"github.com/pkgjs/create-package-json/internal/create"
	"github.com/pkgjs/create-package-json/internal/installer"
	"github.com/pkgjs/create-package-json/internal/logging"
	"github.com/pkgjs/create-package-json/internal/prompt"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var opts = &rootOptions{}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a package.json, or updates the one already in the
target directory. Values come from flags, the existing manifest, git, the
configured defaults and, unless --yes is given, interactive prompts.

Inside an npm workspace the new package is registered with the workspace
root and its dependencies are installed from there.`,
	Example: `  create-package-json
  create-package-json -y --name @scope/pkg --dependencies lodash,chalk
  create-package-json -d packages/foo --workspace-root .`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runCreate,
}

func init() {
	opts.register(rootCmd)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func runCreate(cmd *cobra.Command, args []string) error {
	in, err := opts.input(cmd)
	if err != nil {
		return err
	}

	verbosity := logging.Normal
	switch {
	case opts.silent:
		verbosity = logging.Silent
	case opts.verbose:
		verbosity = logging.Verbose
	}
	logger := logging.New(cmd.ErrOrStderr(), verbosity)

	defaults := config.Current()
	res, err := create.Run(cmd.Context(), create.Options{
		Input:    in,
		Defaults: defaults,
		Prompter: selectPrompter(cmd, opts.yes),
		Installer: &installer.NPM{
			Bin:    defaults.NpmBin,
			Stdout: cmd.ErrOrStderr(),
			Stderr: cmd.ErrOrStderr(),
		},
		Logger: logger,
		Silent: opts.silent,
	})
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return errors.New("aborted")
		}
		return err
	}

	if !opts.silent {
		printSummary(cmd.OutOrStdout(), res)
	}
	return nil
}

// selectPrompter answers with defaults for --yes, renders huh forms on a
// terminal and falls back to plain line prompts otherwise.
func selectPrompter(cmd *cobra.Command, yes bool) prompt.Prompter {
	if yes {
		return prompt.Defaults{}
	}
	if isInteractive() {
		return prompt.NewForm(os.Getenv("ACCESSIBLE") != "")
	}
	return prompt.NewLine(cmd.InOrStdin(), cmd.ErrOrStderr())
}

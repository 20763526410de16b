package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgjs/create-package-json/internal/resolve"
)

// rootOptions holds the root command flags.
type rootOptions struct {
	cwd            string
	name           string
	scope          string
	version        string
	description    string
	author         string
	repository     string
	keywords       []string
	license        string
	moduleType     string
	main           string
	private        bool
	deps           []string
	devDeps        []string
	peerDeps       []string
	scripts        []string
	man            []string
	workspaces     []string
	workspaceRoot  string
	ignoreExisting bool
	saveExact      bool
	spacer         int

	yes     bool
	silent  bool
	verbose bool
}

func (o *rootOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.cwd, "cwd", "d", ".", "Directory to create the package in")
	f.StringVar(&o.name, "name", "", "Package name")
	f.StringVar(&o.scope, "scope", "", "Package scope, with or without the leading @")
	f.StringVar(&o.version, "package-version", "", "Package version")
	f.StringVar(&o.description, "description", "", "Package description")
	f.StringVar(&o.author, "author", "", `Package author, "Name <email>"`)
	f.StringVar(&o.repository, "repository", "", "Repository url")
	f.StringSliceVar(&o.keywords, "keywords", nil, "Keywords, comma separated")
	f.StringVar(&o.license, "license", "", "SPDX license expression")
	f.StringVar(&o.moduleType, "type", "", "Module type: commonjs or module")
	f.StringVar(&o.main, "main", "", "Entry point")
	f.BoolVar(&o.private, "private", false, "Mark the package private")
	f.StringSliceVar(&o.deps, "dependencies", nil, "Dependencies to install")
	f.StringSliceVar(&o.devDeps, "dev-dependencies", nil, "Dev dependencies to install")
	f.StringSliceVar(&o.peerDeps, "peer-dependencies", nil, "Peer dependencies to declare")
	f.StringArrayVar(&o.scripts, "scripts", nil, "Script as name=command, repeatable")
	f.StringSliceVar(&o.man, "man", nil, "Man pages")
	f.StringSliceVar(&o.workspaces, "workspaces", nil, "Workspace globs; empty clears them")
	f.StringVar(&o.workspaceRoot, "workspace-root", "", "Workspace root directory")
	f.BoolVar(&o.ignoreExisting, "ignore-existing", false, "Do not read an existing package.json")
	f.BoolVar(&o.saveExact, "save-exact", false, "Save exact dependency versions")
	f.IntVar(&o.spacer, "spacer", 0, "Indentation width of the written file")

	f.BoolVarP(&o.yes, "yes", "y", false, "Accept defaults without prompting")
	f.BoolVar(&o.silent, "silent", false, "Only print errors")
	f.BoolVar(&o.verbose, "verbose", false, "Print debug output")
	cmd.MarkFlagsMutuallyExclusive("silent", "verbose")
}

// input converts the parsed flags. Lists stay nil unless their flag was
// given, so an explicit empty --workspaces differs from an absent one.
func (o *rootOptions) input(cmd *cobra.Command) (resolve.Input, error) {
	changed := cmd.Flags().Changed

	in := resolve.Input{
		Directory:      o.cwd,
		Name:           o.name,
		Scope:          o.scope,
		Version:        o.version,
		Description:    o.description,
		Author:         o.author,
		License:        o.license,
		Type:           o.moduleType,
		Main:           o.main,
		WorkspaceRoot:  o.workspaceRoot,
		IgnoreExisting: o.ignoreExisting,
		SaveExact:      o.saveExact,
		Spacer:         o.spacer,
	}
	if o.repository != "" {
		in.Repository = resolve.RepositoryURL(o.repository)
	}
	if changed("private") {
		in.Private = resolve.TristateOf(o.private)
	}

	list := func(flag string, v []string) []string {
		if !changed(flag) {
			return nil
		}
		out := []string{}
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	in.Keywords = list("keywords", o.keywords)
	in.Dependencies = list("dependencies", o.deps)
	in.DevDeps = list("dev-dependencies", o.devDeps)
	in.PeerDeps = list("peer-dependencies", o.peerDeps)
	in.Man = list("man", o.man)
	in.Workspaces = list("workspaces", o.workspaces)

	if len(o.scripts) > 0 {
		in.Scripts = map[string]string{}
		for _, s := range o.scripts {
			name, command, ok := strings.Cut(s, "=")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return resolve.Input{}, fmt.Errorf("invalid --scripts value %q: want name=command", s)
			}
			in.Scripts[name] = command
		}
	}
	return in, nil
}

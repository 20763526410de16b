// Package cli defines the Cobra command tree for create-package-json. The
// root command creates or updates a package.json; config and version are
// its only subcommands. Commands handle flag parsing, prompter selection and
// output, and delegate the work to internal/create.
package cli

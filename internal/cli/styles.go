package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pkgjs/create-package-json/internal/create"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Width(18)
)

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// printSummary reports the written manifest.
func printSummary(w io.Writer, res *create.Result) {
	doc := res.Manifest
	fmt.Fprintln(w, successStyle.Render("✓ Wrote "+res.Path))

	name := doc.String("name")
	if v := doc.String("version"); v != "" {
		name += "@" + v
	}
	fmt.Fprintln(w, titleStyle.Render(name))

	row := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintln(w, keyStyle.Render(key)+value)
	}
	row("description", doc.String("description"))
	row("license", doc.String("license"))
	row("type", doc.String("type"))
	row("main", doc.String("main"))
	row("dependencies", strings.Join(sortedKeys(doc.StringMap("dependencies")), ", "))
	row("devDependencies", strings.Join(sortedKeys(doc.StringMap("devDependencies")), ", "))
	row("workspaces", strings.Join(doc.Strings("workspaces"), ", "))

	if res.RootUpdated {
		fmt.Fprintln(w, mutedStyle.Render("Registered with workspace root "+res.Config.WorkspaceRoot))
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

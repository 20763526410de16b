package resolve

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkgjs/create-package-json/internal/config"
	"github.com/pkgjs/create-package-json/internal/depspec"
	"github.com/pkgjs/create-package-json/internal/inspect"
	"github.com/pkgjs/create-package-json/internal/manifest"
	"github.com/pkgjs/create-package-json/internal/prompt"
	"github.com/pkgjs/create-package-json/internal/workspace"
)

// DefaultTestScript is the placeholder test script npm init writes.
const DefaultTestScript = `echo "Error: no test specified" && exit 1`

// Keyword policies.
const (
	KeywordsMerge   = "merge"
	KeywordsReplace = "replace"
)

// Workspace describes where the target directory sits in a workspace.
type Workspace struct {
	Root     string   // workspace root directory; empty when unknown
	Declared bool     // root manifest has a workspaces field
	Patterns []string // root workspace globs
	Inferred []string // member directories found under the target when it is the root
}

// IsMember reports whether dir is below the root rather than the root itself.
func (w Workspace) IsMember(dir string) bool {
	return w.Root != "" && w.Root != dir
}

// Layers are the sources Resolve merges, highest precedence first.
type Layers struct {
	Input     Input
	Existing  *manifest.Document // nil when absent or ignored
	Env       *inspect.Environment
	Defaults  config.Defaults
	Workspace Workspace
	Answers   prompt.Answers // only answers to rendered questions
}

// Resolve builds the Configuration for l and validates the resulting name.
// Inputs are never modified.
func Resolve(l Layers) (*Configuration, error) {
	cfg := Preliminary(l)
	if err := ValidateName(cfg.Name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Preliminary builds the Configuration for l without validating the name.
// It seeds prompt defaults, where a bad directory-derived name is corrected
// by the name question rather than rejected up front.
func Preliminary(l Layers) *Configuration {
	in := l.Input
	existing := l.Existing
	if existing == nil {
		existing = manifest.New()
	}
	env := environment(l.Env, in.Directory)
	answers := l.Answers
	if answers == nil {
		answers = prompt.Answers{}
	}

	cfg := &Configuration{
		Directory: in.Directory,
		SaveExact: in.SaveExact,
		Spacer:    firstPositive(in.Spacer, l.Defaults.Spacer, 2),
	}

	cfg.Name, cfg.Scope = resolveName(in, existing, env)
	if s, ok := answers.String("name"); ok && s != "" {
		cfg.Name, cfg.Scope = answeredName(s, in.Scope)
	}

	cfg.Version = answerOr(answers, "version", firstNonEmpty(in.Version, existing.String("version"), l.Defaults.Version, "1.0.0"))
	cfg.Description = answerOr(answers, "description", firstNonEmpty(in.Description, existing.String("description")))
	cfg.Author = answerOr(answers, "author", firstNonEmpty(in.Author, existing.Author(), env.Author))
	cfg.License = answerOr(answers, "license", firstNonEmpty(in.License, existing.String("license"), l.Defaults.License, "ISC"))
	cfg.Type = answerOr(answers, "type", firstNonEmpty(in.Type, existing.String("type"), l.Defaults.Type, "commonjs"))
	cfg.Main = answerOr(answers, "main", firstNonEmpty(in.Main, existing.String("main"), l.Defaults.Main, "index.js"))

	cfg.Repository = resolveRepository(in, existing, env)
	if s, ok := answers.String("repository"); ok && s != cfg.Repository.URL() {
		cfg.Repository = RepositoryURL(s)
	}

	cfg.Keywords = resolveKeywords(in, existing, answers, l.Defaults.KeywordsPolicy)

	switch {
	case in.Private.IsSet():
		cfg.Private = in.Private
	default:
		if b, ok := existing.Bool("private"); ok {
			cfg.Private = TristateOf(b)
		}
	}

	cfg.Dependencies = slices.Clone(in.Dependencies)
	if deps, ok := answers.Strings("dependencies"); ok {
		cfg.Dependencies = deps
	}
	cfg.DevDependencies = slices.Clone(in.DevDeps)
	if deps, ok := answers.Strings("devDependencies"); ok {
		cfg.DevDependencies = deps
	}
	cfg.PeerDependencies = slices.Clone(in.PeerDeps)

	cfg.Scripts = resolveScripts(in, existing, answers)
	cfg.Man = resolveMan(in, existing)
	cfg.Workspaces = resolveWorkspaces(in, existing, answers, l.Workspace)

	cfg.WorkspaceRoot = firstNonEmpty(in.WorkspaceRoot, l.Workspace.Root)
	if s, ok := answers.String("workspaceRoot"); ok && s != "" {
		cfg.WorkspaceRoot = s
	}

	return cfg
}

// ValidateName checks a full package name, rejecting version suffixes.
func ValidateName(name string) error {
	if err := depspec.ValidatePackageName(name); err != nil {
		return fmt.Errorf("invalid name %q: %w", name, err)
	}
	if err := depspec.CheckName(name); err != nil {
		return fmt.Errorf("invalid name %q: %w", name, err)
	}
	return nil
}

func environment(env *inspect.Environment, dir string) *inspect.Environment {
	if env == nil {
		env = &inspect.Environment{}
	}
	if env.DirectoryName == "" && dir != "" {
		e := *env
		e.DirectoryName, e.DirectoryScope = inspect.NameFromDirectory(dir)
		return &e
	}
	return env
}

// resolveName applies input > manifest > directory. An explicit scope
// replaces any scope in the name; the directory scope only applies to a
// directory-derived name.
func resolveName(in Input, existing *manifest.Document, env *inspect.Environment) (name, scope string) {
	base, fromDir := in.Name, false
	if base == "" {
		base = existing.String("name")
	}
	if base == "" {
		base, fromDir = env.DirectoryName, true
	}

	scope, bare := splitScope(base)
	switch {
	case in.Scope != "":
		scope = NormalizeScope(in.Scope)
	case scope == "" && fromDir:
		scope = env.DirectoryScope
	}

	if scope == "" {
		return bare, ""
	}
	return scope + "/" + bare, scope
}

// answeredName applies an explicit scope to a prompted name, replacing any
// scope the answer carries.
func answeredName(answer, explicitScope string) (name, scope string) {
	scope, bare := splitScope(answer)
	if explicitScope != "" {
		scope = NormalizeScope(explicitScope)
	}
	if scope == "" {
		return bare, ""
	}
	return scope + "/" + bare, scope
}

// NormalizeScope returns scope with a single leading "@".
func NormalizeScope(scope string) string {
	scope = strings.TrimSuffix(strings.TrimSpace(scope), "/")
	if scope == "" {
		return ""
	}
	return "@" + strings.TrimLeft(scope, "@")
}

func splitScope(name string) (scope, bare string) {
	if strings.HasPrefix(name, "@") {
		if s, b, ok := strings.Cut(name, "/"); ok {
			return s, b
		}
	}
	return "", name
}

func resolveRepository(in Input, existing *manifest.Document, env *inspect.Environment) Repository {
	if !in.Repository.IsZero() {
		return in.Repository
	}
	if raw, ok := existing.Raw("repository"); ok {
		if r := RepositoryFromJSON(raw); !r.IsZero() {
			return r
		}
	}
	if env.Remote != "" {
		return RepositoryURL(env.Remote)
	}
	return Repository{}
}

func resolveKeywords(in Input, existing *manifest.Document, answers prompt.Answers, policy string) []string {
	incoming := in.Keywords
	if kw, ok := answers.Strings("keywords"); ok {
		incoming = kw
	}
	if policy == KeywordsReplace && incoming != nil {
		return Union(nil, incoming)
	}
	return Union(existing.Strings("keywords"), incoming)
}

// Union returns the items of a followed by the unseen items of b, in order.
func Union(a, b []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func resolveScripts(in Input, existing *manifest.Document, answers prompt.Answers) map[string]string {
	scripts := map[string]string{}
	maps.Copy(scripts, existing.StringMap("scripts"))
	maps.Copy(scripts, in.Scripts)
	if answered, ok := answers["scripts"].(map[string]string); ok {
		maps.Copy(scripts, answered)
	}
	if scripts["test"] == "" {
		scripts["test"] = DefaultTestScript
	}
	maps.DeleteFunc(scripts, func(_, v string) bool { return v == "" })
	return scripts
}

func resolveMan(in Input, existing *manifest.Document) []string {
	if len(in.Man) > 0 {
		return slices.Clone(in.Man)
	}
	if s := existing.String("man"); s != "" {
		return []string{s}
	}
	return existing.Strings("man")
}

func resolveWorkspaces(in Input, existing *manifest.Document, answers prompt.Answers, ws Workspace) []string {
	var out []string
	switch {
	case in.Workspaces != nil:
		out = slices.Clone(in.Workspaces)
	case existing.Has("workspaces"):
		out = workspace.Patterns(existing)
	case !ws.IsMember(in.Directory):
		out = slices.Clone(ws.Inferred)
	}
	if list, ok := answers.Strings("workspaces"); ok {
		out = list
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func answerOr(answers prompt.Answers, name, fallback string) string {
	if s, ok := answers.String(name); ok && s != "" {
		return s
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

package resolve

import (
	"encoding/json"
	"strings"
)

// Tristate is an optional boolean.
type Tristate int

const (
	Unset Tristate = iota
	True
	False
)

// TristateOf wraps b.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// IsSet reports whether a value was given.
func (t Tristate) IsSet() bool { return t != Unset }

// Bool returns the value, false when unset.
func (t Tristate) Bool() bool { return t == True }

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// RepositoryInfo is the structured form of the repository field.
type RepositoryInfo struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Directory string `json:"directory,omitempty"`
}

// Repository holds either a bare URL or a structured value, never both.
type Repository struct {
	url        string
	structured *RepositoryInfo
}

// RepositoryURL returns a Repository holding a bare URL.
func RepositoryURL(url string) Repository {
	return Repository{url: strings.TrimSpace(url)}
}

// RepositoryStructured returns a Repository holding info as given.
func RepositoryStructured(info RepositoryInfo) Repository {
	return Repository{structured: &info}
}

// RepositoryFromJSON decodes a manifest repository value (string or object).
func RepositoryFromJSON(raw json.RawMessage) Repository {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return RepositoryURL(s)
	}
	var info RepositoryInfo
	if err := json.Unmarshal(raw, &info); err == nil && info.URL != "" {
		return RepositoryStructured(info)
	}
	return Repository{}
}

// IsZero reports whether no repository is set.
func (r Repository) IsZero() bool { return r.url == "" && r.structured == nil }

// IsStructured reports whether r holds a structured value.
func (r Repository) IsStructured() bool { return r.structured != nil }

// URL returns the repository URL of either form.
func (r Repository) URL() string {
	if r.structured != nil {
		return r.structured.URL
	}
	return r.url
}

// Normalized returns the structured form; a bare URL becomes {type: git, url}.
func (r Repository) Normalized() *RepositoryInfo {
	if r.structured != nil {
		info := *r.structured
		return &info
	}
	if r.url == "" {
		return nil
	}
	return &RepositoryInfo{Type: "git", URL: r.url}
}

// Input is what the caller asked for explicitly. Nil slices and empty
// strings mean "not given".
type Input struct {
	Directory     string
	Name          string
	Scope         string
	Version       string
	Description   string
	Author        string
	Repository    Repository
	Keywords      []string
	License       string
	Type          string
	Main          string
	Private       Tristate
	Dependencies  []string
	DevDeps       []string
	PeerDeps      []string
	Scripts       map[string]string
	Man           []string
	Workspaces    []string // non-nil and empty clears the field
	WorkspaceRoot string

	IgnoreExisting bool
	SaveExact      bool
	Spacer         int
}

// Configuration is the fully resolved set of manifest fields.
type Configuration struct {
	Directory        string
	Name             string // includes the scope
	Scope            string
	Version          string
	Description      string
	Author           string
	Repository       Repository
	Keywords         []string
	License          string
	Type             string
	Main             string
	Private          Tristate
	Dependencies     []string
	DevDependencies  []string
	PeerDependencies []string // input specifiers; existing peers are merged by format
	Scripts          map[string]string
	Man              []string
	Workspaces       []string
	WorkspaceRoot    string

	SaveExact bool
	Spacer    int
}

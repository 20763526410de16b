package depspec

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	packageurl "github.com/package-url/packageurl-go"
)

// Type is the kind of source a specifier points at.
type Type string

const (
	TypeTag       Type = "tag"
	TypeVersion   Type = "version"
	TypeRange     Type = "range"
	TypeGit       Type = "git"
	TypeFile      Type = "file"
	TypeDirectory Type = "directory"
	TypeRemote    Type = "remote"
)

// AllTypes lists every specifier type.
var AllTypes = []Type{TypeTag, TypeGit, TypeVersion, TypeRange, TypeFile, TypeDirectory, TypeRemote}

// RegistryTypes are the types that resolve against the package registry.
var RegistryTypes = []Type{TypeTag, TypeRange, TypeVersion}

// Spec is a parsed dependency specifier.
type Spec struct {
	Raw       string // input as given
	Name      string // package name, empty for unnamed git/file/url specs
	Type      Type
	RawSpec   string // text after the name ("^1.0.0", "github:a/b", "")
	FetchSpec string // what a fetcher would use ("latest" for a bare name)
}

// IsRegistry reports whether the spec resolves against the registry.
func (s *Spec) IsRegistry() bool {
	return s.Type == TypeTag || s.Type == TypeVersion || s.Type == TypeRange
}

// PURL returns the package URL of a registry spec, e.g. "pkg:npm/%40scope/name@1.0.0".
// Non-registry specs return "".
func (s *Spec) PURL() string {
	if !s.IsRegistry() || s.Name == "" {
		return ""
	}
	namespace, name := "", s.Name
	if scope, bare := splitScope(s.Name); scope != "" {
		namespace, name = "@"+scope, bare
	}
	version := ""
	if s.Type == TypeVersion {
		version = s.FetchSpec
	}
	return packageurl.NewPackageURL(packageurl.TypeNPM, namespace, name, version, nil, "").ToString()
}

var (
	gitShorthand = regexp.MustCompile(`^[\w.-]+/[\w.-]+(#.*)?$`)
	windowsPath  = regexp.MustCompile(`^[a-zA-Z]:[\\/]`)
	hostedGit    = regexp.MustCompile(`^https?://(www\.)?(github\.com|gitlab\.com|bitbucket\.org)/[^/]+/[^/]+`)
	gitPrefixes  = []string{"git+", "git://", "git@", "github:", "gitlab:", "bitbucket:", "gist:"}
	tarballExts  = []string{".tgz", ".tar.gz", ".tar"}
)

// Parse classifies raw without validating names or versions.
func Parse(raw string) (*Spec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &InvalidNameError{Raw: raw, Reason: "name cannot be empty"}
	}

	if t, ok := classifySource(raw, true); ok {
		return &Spec{Raw: raw, Type: t, RawSpec: raw, FetchSpec: fetchSpecFor(t, raw)}, nil
	}

	name, rest := splitNameAndSpec(raw)
	s := &Spec{Raw: raw, Name: name, RawSpec: rest}

	if t, ok := classifySource(rest, false); ok {
		s.Type = t
		s.FetchSpec = fetchSpecFor(t, rest)
		return s, nil
	}

	switch {
	case rest == "":
		s.Type = TypeTag
		s.FetchSpec = "latest"
	case isExactVersion(rest):
		s.Type = TypeVersion
		s.FetchSpec = strings.TrimPrefix(strings.TrimPrefix(rest, "="), "v")
	case isRange(rest):
		s.Type = TypeRange
		s.FetchSpec = rest
	default:
		s.Type = TypeTag
		s.FetchSpec = rest
	}
	return s, nil
}

// Normalize parses raw and checks it against allowed types (all types when
// none are given), the semver rules and the naming rules.
func Normalize(raw string, allowed ...Type) (*Spec, error) {
	s, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if len(allowed) == 0 {
		allowed = AllTypes
	}
	if !containsType(allowed, s.Type) {
		return nil, &InvalidTypeError{Raw: s.Raw, Type: s.Type}
	}

	if s.IsRegistry() {
		if !semverUsable(s.RawSpec) {
			return nil, &InvalidSemverError{Raw: s.Raw, Spec: s.RawSpec}
		}
		if s.Name == "" {
			return nil, &InvalidNameError{Raw: s.Raw, Reason: "name cannot be empty"}
		}
		if reason := nameViolation(s.Name); reason != "" {
			return nil, &InvalidNameError{Raw: s.Raw, Reason: reason}
		}
	}
	return s, nil
}

// classifySource detects git, remote, file and directory specifiers. With
// bare set, raw has no "name@" prefix, so github shorthand is considered.
func classifySource(raw string, bare bool) (Type, bool) {
	if raw == "" {
		return "", false
	}
	for _, p := range gitPrefixes {
		if strings.HasPrefix(raw, p) {
			return TypeGit, true
		}
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if strings.HasSuffix(raw, ".git") || hostedGit.MatchString(raw) && !hasTarballExt(raw) {
			return TypeGit, true
		}
		return TypeRemote, true
	}
	if strings.HasPrefix(raw, "file:") || isPath(raw) {
		if hasTarballExt(raw) {
			return TypeFile, true
		}
		return TypeDirectory, true
	}
	if bare && !strings.HasPrefix(raw, "@") && gitShorthand.MatchString(raw) {
		return TypeGit, true
	}
	return "", false
}

func isPath(raw string) bool {
	return strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") ||
		strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "~/") ||
		raw == "." || raw == ".." || windowsPath.MatchString(raw)
}

func hasTarballExt(raw string) bool {
	for _, ext := range tarballExts {
		if strings.HasSuffix(raw, ext) {
			return true
		}
	}
	return false
}

func fetchSpecFor(t Type, raw string) string {
	switch t {
	case TypeFile, TypeDirectory:
		return strings.TrimPrefix(raw, "file:")
	default:
		return raw
	}
}

// splitNameAndSpec splits "name@spec" or "@scope/name@spec" at the version separator.
func splitNameAndSpec(raw string) (name, spec string) {
	if idx := strings.Index(raw[1:], "@"); idx >= 0 {
		return raw[:idx+1], raw[idx+2:]
	}
	return raw, ""
}

func isExactVersion(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "="), "v")
	_, err := semver.StrictNewVersion(s)
	return err == nil
}

func isRange(s string) bool {
	_, err := semver.NewConstraint(s)
	return err == nil
}

var coerceRe = regexp.MustCompile(`(?:^|[^\d])(\d{1,16})(?:\.(\d{1,16}))?(?:\.(\d{1,16}))?(?:$|[^\d])`)

// Coerce extracts the first version-looking run of digits from s, filling
// missing minor/patch with zero ("~8.0" → 8.0.0, "v2" → 2.0.0).
func Coerce(s string) (*semver.Version, bool) {
	m := coerceRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	parts := []string{m[1], "0", "0"}
	if m[2] != "" {
		parts[1] = m[2]
	}
	if m[3] != "" {
		parts[2] = m[3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, false
	}
	return v, true
}

func semverUsable(spec string) bool {
	if spec == "" || spec == "*" || strings.HasPrefix(spec, "<=") || strings.HasPrefix(spec, ">=") {
		return true
	}
	_, ok := Coerce(spec)
	return ok
}

func containsType(types []Type, t Type) bool {
	for _, c := range types {
		if c == t {
			return true
		}
	}
	return false
}

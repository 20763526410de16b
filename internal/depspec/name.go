package depspec

import (
	"strings"
)

const maxNameLength = 214

var blacklistedNames = []string{"node_modules", "favicon.ico"}

// coreModules are node built-ins; the registry refuses new packages with these names.
var coreModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// CheckName validates a bare package name (optionally "@scope/name") against
// the registry naming rules. It returns the first violated rule.
func CheckName(name string) error {
	reason := nameViolation(name)
	if reason == "" {
		return nil
	}
	return &InvalidNameError{Raw: name, Reason: reason}
}

func nameViolation(name string) string {
	if name == "" {
		return "name length must be greater than zero"
	}
	if strings.HasPrefix(name, ".") {
		return "name cannot start with a period"
	}
	if strings.HasPrefix(name, "_") {
		return "name cannot start with an underscore"
	}
	if strings.TrimSpace(name) != name {
		return "name cannot contain leading or trailing spaces"
	}
	for _, b := range blacklistedNames {
		if strings.EqualFold(name, b) {
			return name + " is a blacklisted name"
		}
	}
	if coreModules[strings.ToLower(name)] {
		return name + " is a core module name"
	}
	if len(name) > maxNameLength {
		return "name can no longer contain more than 214 characters"
	}
	if strings.ToLower(name) != name {
		return "name can no longer contain capital letters"
	}

	scope, bare := splitScope(name)
	if strings.ContainsAny(bare, "~'!()*") {
		return `name can no longer contain special characters ("~'!()*")`
	}
	if scope != "" && !isURLFriendly(scope) {
		return "name can only contain URL-friendly characters"
	}
	if bare == "" || !isURLFriendly(bare) {
		return "name can only contain URL-friendly characters"
	}
	return ""
}

// splitScope splits "@scope/name" into ("scope", "name"). Unscoped names
// return an empty scope.
func splitScope(name string) (scope, bare string) {
	if !strings.HasPrefix(name, "@") {
		return "", name
	}
	s, b, ok := strings.Cut(name[1:], "/")
	if !ok {
		return "", name
	}
	return s, b
}

// isURLFriendly reports whether encodeURIComponent would leave s unchanged.
func isURLFriendly(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_.!~*'()", r):
		default:
			return false
		}
	}
	return true
}

package depspec

import (
	"fmt"
	"sort"
)

const namingRulesHint = "this most likely indicates an invalid package name, see https://www.npmjs.com/package/validate-npm-package-name#naming-rules for naming rules"

// ValidatePackageName checks that raw names a registry package, rejecting
// git, file, directory and remote specifiers.
func ValidatePackageName(raw string) error {
	if _, err := Normalize(raw, RegistryTypes...); err != nil {
		return fmt.Errorf("%w (%s)", err, namingRulesHint)
	}
	return nil
}

// ValidatePackageSpec validates each raw name in order and returns the first failure.
func ValidatePackageSpec(raws []string) error {
	for _, raw := range raws {
		if err := ValidatePackageName(raw); err != nil {
			return err
		}
	}
	return nil
}

// ToVersionStrings renders a dependency map as sorted "name@range" strings.
// With includeVersion false, or when the range is empty or "*", only the name is kept.
func ToVersionStrings(deps map[string]string, includeVersion bool) []string {
	out := make([]string, 0, len(deps))
	for name, rng := range deps {
		if !includeVersion || rng == "" || rng == "*" {
			out = append(out, name)
			continue
		}
		out = append(out, name+"@"+rng)
	}
	sort.Strings(out)
	return out
}

// PeerRange is the value written for a peer dependency: the literal range
// for version and range specs, "*" for everything else.
func PeerRange(s *Spec) string {
	switch s.Type {
	case TypeVersion, TypeRange:
		return s.RawSpec
	default:
		return "*"
	}
}

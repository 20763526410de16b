package manifest

import (
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// ValidLicense reports whether id is an SPDX expression or one of the
// npm-accepted escapes (UNLICENSED, "SEE LICENSE IN <file>").
func ValidLicense(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if strings.EqualFold(id, "UNLICENSED") || strings.HasPrefix(id, "SEE LICENSE IN ") {
		return true
	}
	valid, _ := spdxexp.ValidateLicenses([]string{id})
	return valid
}

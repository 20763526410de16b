// Package config manages user-level defaults stored at
// ~/.create-package-json/config.yaml. Values in this file (and the matching
// CREATE_PACKAGE_JSON_* environment variables) replace the built-in defaults
// used when neither the caller nor an existing package.json supplies a field.
package config

// Package depspec parses and validates dependency specifiers such as
// "express", "@scope/pkg@^1.2.0", "github:user/repo" or "file:../lib".
//
// Classification follows the npm conventions: registry specifiers are a tag,
// an exact version or a semver range; everything else is a git, remote,
// file or directory reference. Registry names are checked against the npm
// naming rules.
package depspec

// Package installer runs the package manager to add dependencies to a
// manifest. The NPM implementation shells out to the npm CLI with a
// sanitized environment and captures its output.
package installer

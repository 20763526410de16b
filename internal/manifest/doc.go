// Package manifest reads, writes and checks package.json documents.
//
// A Document keeps the key order of the file it was read from, so rewriting a
// manifest only moves the keys the formatter manages. Validation runs the
// formatted output against an embedded JSON Schema covering those keys.
package manifest

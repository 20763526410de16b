package manifest

import (
	"encoding/json"
	"testing"
)

func mustDoc(t *testing.T, src string) *Document {
	t.Helper()
	doc := New()
	if err := json.Unmarshal([]byte(src), doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return doc
}

func TestValidate_Valid(t *testing.T) {
	doc := mustDoc(t, `{
		"name": "pkg",
		"version": "1.0.0",
		"type": "module",
		"keywords": ["a"],
		"scripts": {"test": "mocha"},
		"author": "Jane",
		"repository": {"type": "git", "url": "https://github.com/a/b"},
		"man": "./man/doc.1",
		"peerDependencies": {"eslint": "*"},
		"workspaces": ["packages/*"]
	}`)

	result, err := Validate(doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got issues: %v", result.Issues)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{"missing version", `{"name":"pkg"}`, ""},
		{"bad type", `{"name":"pkg","version":"1.0.0","type":"esm"}`, "/type"},
		{"duplicate keywords", `{"name":"pkg","version":"1.0.0","keywords":["a","a"]}`, "/keywords"},
		{"empty workspaces", `{"name":"pkg","version":"1.0.0","workspaces":[]}`, "/workspaces"},
		{"non-string script", `{"name":"pkg","version":"1.0.0","scripts":{"test":1}}`, "/scripts/test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(mustDoc(t, tt.src))
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %q in %v", tt.path, result.Issues)
			}
		})
	}
}

func TestValidLicense(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"MIT", true},
		{"ISC", true},
		{"(MIT OR Apache-2.0)", true},
		{"UNLICENSED", true},
		{"SEE LICENSE IN LICENSE.md", true},
		{"", false},
		{"not-a-license", false},
	}
	for _, tt := range tests {
		if got := ValidLicense(tt.id); got != tt.want {
			t.Errorf("ValidLicense(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

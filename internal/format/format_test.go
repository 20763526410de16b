package format

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pkgjs/create-package-json/internal/depspec"
	"github.com/pkgjs/create-package-json/internal/manifest"
	"github.com/pkgjs/create-package-json/internal/resolve"
)

func baseConfig() *resolve.Configuration {
	return &resolve.Configuration{
		Name:     "pkg",
		Version:  "1.0.0",
		Main:     "index.js",
		Type:     "commonjs",
		License:  "ISC",
		Scripts:  map[string]string{"test": resolve.DefaultTestScript},
		Keywords: []string{},
	}
}

func parse(t *testing.T, src string) *manifest.Document {
	t.Helper()
	d := manifest.New()
	if err := json.Unmarshal([]byte(src), d); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFormat_KeyOrder(t *testing.T) {
	cfg := baseConfig()
	cfg.Description = "desc"
	cfg.Author = "Jane <jane@example.com>"
	cfg.Keywords = []string{"a"}
	cfg.Repository = resolve.RepositoryURL("https://github.com/a/b.git")
	cfg.Private = resolve.True
	cfg.Man = []string{"a.1", "b.1"}
	cfg.PeerDependencies = []string{"mocha@~8.0.0"}
	cfg.Workspaces = []string{"packages/*"}

	existing := parse(t, `{"bin":{"x":"x.js"},"name":"old","dependencies":{"lodash":"^4.0.0"},"engines":{"node":">=18"}}`)

	doc, err := Format(context.Background(), cfg, existing)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	want := []string{
		"name", "version", "description", "main", "type", "keywords", "scripts",
		"author", "license", "repository", "private", "man", "peerDependencies",
		"workspaces", "bin", "dependencies", "engines",
	}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v\nwant %v", got, want)
	}
	if got := doc.StringMap("dependencies"); got["lodash"] != "^4.0.0" {
		t.Errorf("existing dependencies not preserved: %v", got)
	}
}

func TestFormat_OmitsEmptyOptionalFields(t *testing.T) {
	cfg := baseConfig()
	cfg.Private = resolve.False

	doc, err := Format(context.Background(), cfg, parse(t, `{"private":true,"keywords":["x"]}`))
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, key := range []string{"keywords", "repository", "private", "man", "peerDependencies", "workspaces"} {
		if doc.Has(key) {
			t.Errorf("%s should be omitted", key)
		}
	}
}

func TestFormat_Man(t *testing.T) {
	cfg := baseConfig()
	cfg.Man = []string{"./man/doc.1"}
	doc, err := Format(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if got := doc.String("man"); got != "./man/doc.1" {
		t.Errorf("man = %q, want bare string", got)
	}

	cfg.Man = []string{"a.1", "b.1"}
	doc, err = Format(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if got := doc.Strings("man"); !reflect.DeepEqual(got, cfg.Man) {
		t.Errorf("man = %v, want %v", got, cfg.Man)
	}
}

func TestFormat_Repository(t *testing.T) {
	cfg := baseConfig()
	cfg.Repository = resolve.RepositoryURL("https://github.com/a/b.git")
	doc, err := Format(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	var repo resolve.RepositoryInfo
	if err := doc.Get("repository", &repo); err != nil {
		t.Fatal(err)
	}
	if repo != (resolve.RepositoryInfo{Type: "git", URL: "https://github.com/a/b.git"}) {
		t.Errorf("repository = %+v", repo)
	}

	structured := resolve.RepositoryInfo{Type: "svn", URL: "https://svn.example.com/x", Directory: "pkg"}
	cfg.Repository = resolve.RepositoryStructured(structured)
	doc, err = Format(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if err := doc.Get("repository", &repo); err != nil {
		t.Fatal(err)
	}
	if repo != structured {
		t.Errorf("repository = %+v, want %+v", repo, structured)
	}
}

func TestFormat_KeepsWorkspacesObjectForm(t *testing.T) {
	cfg := baseConfig()
	cfg.Workspaces = []string{"packages/*"}
	existing := parse(t, `{"workspaces":{"packages":["packages/*"],"nohoist":["**/x"]}}`)

	doc, err := Format(context.Background(), cfg, existing)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	raw, _ := doc.Raw("workspaces")
	if !strings.Contains(string(raw), "nohoist") {
		t.Errorf("workspaces = %s, want object form kept", raw)
	}
}

func TestFormat_RejectsBadDependencies(t *testing.T) {
	cfg := baseConfig()
	cfg.Dependencies = []string{"express", "mocha@a.b.c"}

	_, err := Format(context.Background(), cfg, nil)
	var semErr *depspec.InvalidSemverError
	if !errors.As(err, &semErr) {
		t.Fatalf("error = %v, want *InvalidSemverError", err)
	}

	cfg = baseConfig()
	cfg.DevDependencies = []string{"./local"}
	_, err = Format(context.Background(), cfg, nil)
	var typeErr *depspec.InvalidTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %v, want *InvalidTypeError", err)
	}
}

func TestFormat_SchemaViolation(t *testing.T) {
	cfg := baseConfig()
	cfg.Type = "esm"
	if _, err := Format(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected schema error for invalid type")
	}
}

func TestFormat_ExistingPeersKeptVerbatim(t *testing.T) {
	cfg := baseConfig()
	cfg.PeerDependencies = []string{"mocha@~8.0.0", "eslint"}
	existing := parse(t, `{"peerDependencies":{"foo":"github:a/b","react":"workspace:^","bar":"latest","mocha":"^7.0.0"}}`)

	doc, err := Format(context.Background(), cfg, existing)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	peers := manifest.New()
	if err := doc.Get("peerDependencies", peers); err != nil {
		t.Fatal(err)
	}
	if got, want := peers.Keys(), []string{"foo", "react", "bar", "mocha", "eslint"}; !reflect.DeepEqual(got, want) {
		t.Errorf("peer keys = %v, want %v", got, want)
	}
	want := map[string]string{
		"foo":    "github:a/b",
		"react":  "workspace:^",
		"bar":    "latest",
		"mocha":  "~8.0.0",
		"eslint": "*",
	}
	for name, rng := range want {
		if got := peers.String(name); got != rng {
			t.Errorf("peerDependencies[%s] = %q, want %q", name, got, rng)
		}
	}
}

func TestPeerDependencies(t *testing.T) {
	peers, err := PeerDependencies(context.Background(), []string{"mocha@~8.0.0", "eslint"})
	if err != nil {
		t.Fatalf("PeerDependencies() error: %v", err)
	}
	got := map[string]string{}
	for _, k := range peers.Keys() {
		got[k] = peers.String(k)
	}
	want := map[string]string{"mocha": "~8.0.0", "eslint": "*"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("peers = %v, want %v", got, want)
	}
}

func TestPeerDependencies_LaterWins(t *testing.T) {
	peers, err := PeerDependencies(context.Background(), []string{"react@^17.0.0", "vue@^3", "react@^18.0.0"})
	if err != nil {
		t.Fatalf("PeerDependencies() error: %v", err)
	}
	if got := peers.String("react"); got != "^18.0.0" {
		t.Errorf("react = %q, want ^18.0.0", got)
	}
	if got := peers.Keys(); !reflect.DeepEqual(got, []string{"react", "vue"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestPeerDependencies_Unnamed(t *testing.T) {
	if _, err := PeerDependencies(context.Background(), []string{"github:a/b"}); err == nil {
		t.Fatal("expected error for unnamed peer specifier")
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	cfg := baseConfig()
	cfg.Author = "Jane <jane@example.com>"
	cfg.Keywords = []string{"a", "b"}

	doc, err := Format(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	data, err := doc.Indent(2)
	if err != nil {
		t.Fatal(err)
	}
	back := manifest.New()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatal(err)
	}
	again, err := back.Indent(2)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip changed output:\n%s\n%s", data, again)
	}
}

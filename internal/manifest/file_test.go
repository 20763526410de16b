package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRead_NotFound(t *testing.T) {
	_, err := ReadDir(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadDir on empty dir: err = %v, want ErrNotFound", err)
	}
}

func TestRead_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadDir(dir)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("ReadDir on broken file: err = %v, want parse error", err)
	}
}

func TestWrite_CreatesDirectoriesAndRoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pkg")

	doc := New()
	_ = doc.Set("name", "pkg")
	_ = doc.Set("version", "1.0.0")
	_ = doc.Set("keywords", []string{"a", "b"})

	if err := Write(Path(dir), doc, 2); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if !reflect.DeepEqual(got.Keys(), doc.Keys()) {
		t.Errorf("Keys() = %v, want %v", got.Keys(), doc.Keys())
	}
	if !reflect.DeepEqual(got.Strings("keywords"), []string{"a", "b"}) {
		t.Errorf("keywords = %v", got.Strings("keywords"))
	}

	first, _ := os.ReadFile(Path(dir))
	if err := Write(Path(dir), got, 2); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	second, _ := os.ReadFile(Path(dir))
	if string(first) != string(second) {
		t.Errorf("rewrite changed bytes:\n%s\nvs\n%s", first, second)
	}
}

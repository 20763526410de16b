package prompt

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestListFilter(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"foo, bar,baz", []string{"foo", "bar", "baz"}},
		{"  express ,  react  ", []string{"express", "react"}},
		{"a,,b", []string{"a", "b"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := ListFilter(tt.in).([]string)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ListFilter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuestion_Convert(t *testing.T) {
	list := Question{Name: "keywords", Default: []string{"x"}, Filter: ListFilter}
	if got := list.Convert(""); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("empty input = %v, want default", got)
	}
	if got := list.Convert("a, b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("list input = %v", got)
	}

	confirm := Question{Name: "another", Kind: Confirm, Default: false}
	if got := confirm.Convert("y"); got != true {
		t.Errorf("confirm y = %v", got)
	}
	if got := confirm.Convert(""); got != false {
		t.Errorf("confirm empty = %v", got)
	}
}

func TestDefaults_SkipsHiddenQuestions(t *testing.T) {
	questions := []Question{
		{Name: "name", Default: "pkg"},
		{Name: "version", Default: "1.0.0", When: func() bool { return false }},
		{Name: "keywords", Default: []string{"a"}},
		{Name: "description"},
	}

	got, err := Defaults{}.Prompt(context.Background(), questions)
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	want := Answers{"name": "pkg", "keywords": []string{"a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prompt() = %v, want %v", got, want)
	}
}

func TestLine_PromptsInOrder(t *testing.T) {
	in := strings.NewReader("my-pkg\n\nfoo, bar\n")
	var out bytes.Buffer

	questions := []Question{
		{Name: "name", Message: "Package name:", Default: "dir"},
		{Name: "hidden", Message: "Hidden:", When: func() bool { return false }},
		{Name: "version", Message: "Version:", Default: "1.0.0"},
		{Name: "keywords", Message: "Keywords:", Filter: ListFilter},
	}

	got, err := NewLine(in, &out).Prompt(context.Background(), questions)
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	want := Answers{"name": "my-pkg", "version": "1.0.0", "keywords": []string{"foo", "bar"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prompt() = %v, want %v", got, want)
	}

	transcript := out.String()
	if strings.Contains(transcript, "Hidden:") {
		t.Error("hidden question was rendered")
	}
	if i, j := strings.Index(transcript, "Package name:"), strings.Index(transcript, "Version:"); i < 0 || j < i {
		t.Errorf("questions rendered out of order: %q", transcript)
	}
}

func TestLine_ReasksOnValidationError(t *testing.T) {
	in := strings.NewReader("Bad Name\ngood-name\n")
	var out bytes.Buffer

	q := Question{
		Name:    "name",
		Message: "Package name:",
		Validate: func(v any) error {
			if strings.ContainsAny(v.(string), " ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
				return errors.New("invalid name")
			}
			return nil
		},
	}

	got, err := NewLine(in, &out).Prompt(context.Background(), []Question{q})
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	if got["name"] != "good-name" {
		t.Errorf("name = %v, want good-name", got["name"])
	}
	if !strings.Contains(out.String(), "invalid name") {
		t.Errorf("validation error not shown: %q", out.String())
	}
}

func TestLine_EOFUsesDefault(t *testing.T) {
	got, err := NewLine(strings.NewReader(""), &bytes.Buffer{}).Prompt(context.Background(), []Question{
		{Name: "version", Message: "Version:", Default: "1.0.0"},
	})
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	if got["version"] != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", got["version"])
	}
}

func TestLine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLine(strings.NewReader("x\n"), &bytes.Buffer{}).Prompt(ctx, []Question{{Name: "name"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestAnswers_Accessors(t *testing.T) {
	a := Answers{"name": "x", "keywords": []string{"a"}, "deps": "a, b", "ok": true}
	if s, ok := a.String("name"); !ok || s != "x" {
		t.Errorf("String(name) = %q, %v", s, ok)
	}
	if l, ok := a.Strings("deps"); !ok || !reflect.DeepEqual(l, []string{"a", "b"}) {
		t.Errorf("Strings(deps) = %v, %v", l, ok)
	}
	if b, ok := a.Bool("ok"); !ok || !b {
		t.Errorf("Bool(ok) = %v, %v", b, ok)
	}
	if _, ok := a.String("missing"); ok {
		t.Error("String(missing) ok = true")
	}
}

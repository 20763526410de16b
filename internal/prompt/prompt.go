// Package prompt defines the question/answer contract used to fill in
// unresolved fields, along with the renderers that implement it.
package prompt

import (
	"context"
	"regexp"
	"strings"
)

// Kind selects how a question is rendered.
type Kind int

const (
	// Input asks for free text.
	Input Kind = iota
	// Confirm asks a yes/no question.
	Confirm
)

// Question describes a single prompt. Questions are rendered in slice order.
type Question struct {
	Name    string
	Message string
	Kind    Kind
	// Default is a string, []string or bool.
	Default any
	// When reports whether the question is rendered. Nil means always.
	When func() bool
	// Filter converts the raw text answer before validation.
	Filter func(string) any
	// Validate rejects an answer; renderers re-ask on error.
	Validate func(any) error
}

// Rendered evaluates the question's When predicate.
func (q Question) Rendered() bool {
	return q.When == nil || q.When()
}

// Convert applies Filter (or the Kind's native conversion) to raw text.
// Empty input yields the default.
func (q Question) Convert(raw string) any {
	raw = strings.TrimSpace(raw)
	if q.Kind == Confirm {
		switch strings.ToLower(raw) {
		case "y", "yes", "true":
			return true
		case "n", "no", "false":
			return false
		default:
			b, _ := q.Default.(bool)
			return b
		}
	}
	if raw == "" {
		return q.Default
	}
	if q.Filter != nil {
		return q.Filter(raw)
	}
	return raw
}

// Check runs Validate when present.
func (q Question) Check(v any) error {
	if q.Validate == nil {
		return nil
	}
	return q.Validate(v)
}

// Answers maps question names to answers. Only rendered questions appear.
type Answers map[string]any

// String returns the answer for name when it is a string.
func (a Answers) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Strings returns the answer for name when it is a list.
func (a Answers) Strings(name string) ([]string, bool) {
	switch v := a[name].(type) {
	case []string:
		return v, true
	case string:
		return ListFilter(v).([]string), true
	default:
		return nil, false
	}
}

// Bool returns the answer for name when it is a boolean.
func (a Answers) Bool(name string) (value, ok bool) {
	b, ok := a[name].(bool)
	return b, ok
}

// Prompter renders questions and collects answers.
type Prompter interface {
	Prompt(ctx context.Context, questions []Question) (Answers, error)
}

var listSeparator = regexp.MustCompile(`\s*,\s*`)

// ListFilter splits a comma separated answer into its non-empty items.
func ListFilter(raw string) any {
	out := []string{}
	for _, item := range listSeparator.Split(strings.TrimSpace(raw), -1) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DefaultText renders a default value for display and editing.
func DefaultText(def any) string {
	switch v := def.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case bool:
		if v {
			return "Y/n"
		}
		return "y/N"
	default:
		return ""
	}
}

// Defaults answers every rendered question with its default.
type Defaults struct{}

func (Defaults) Prompt(ctx context.Context, questions []Question) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !q.Rendered() {
			continue
		}
		if q.Default != nil {
			answers[q.Name] = q.Default
		}
	}
	return answers, nil
}

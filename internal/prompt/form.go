package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a terminal form.
var ErrAborted = errors.New("prompt aborted")

// Form renders each question as a terminal form field.
type Form struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
	Theme      *huh.Theme
}

// NewForm returns a terminal form prompter using the Charm theme.
func NewForm(accessible bool) *Form {
	return &Form{Accessible: accessible, Theme: huh.ThemeCharm()}
}

func (f *Form) Prompt(ctx context.Context, questions []Question) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if !q.Rendered() {
			continue
		}
		v, err := f.ask(ctx, q)
		if err != nil {
			return nil, err
		}
		if v != nil {
			answers[q.Name] = v
		}
	}
	return answers, nil
}

func (f *Form) ask(ctx context.Context, q Question) (any, error) {
	var field huh.Field
	var text string
	var confirmed bool

	switch q.Kind {
	case Confirm:
		confirmed, _ = q.Default.(bool)
		field = huh.NewConfirm().Title(q.Message).Value(&confirmed)
	default:
		text = DefaultText(q.Default)
		field = huh.NewInput().
			Title(q.Message).
			Value(&text).
			Validate(func(s string) error { return q.Check(q.Convert(s)) })
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(f.Theme).
		WithAccessible(f.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("prompting %s: %w", q.Name, err)
	}

	if q.Kind == Confirm {
		return confirmed, nil
	}
	return q.Convert(text), nil
}

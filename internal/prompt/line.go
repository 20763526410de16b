package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Line prompts on a plain text stream, one question per line. Invalid
// answers are reported and the question is asked again.
type Line struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLine returns a Line prompter reading from r and writing to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{reader: bufio.NewReader(r), w: w}
}

func (l *Line) Prompt(ctx context.Context, questions []Question) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if !q.Rendered() {
			continue
		}
		v, err := l.ask(ctx, q)
		if err != nil {
			return nil, err
		}
		if v != nil {
			answers[q.Name] = v
		}
	}
	return answers, nil
}

func (l *Line) ask(ctx context.Context, q Question) (any, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if def := DefaultText(q.Default); def != "" {
			fmt.Fprintf(l.w, "%s (%s) ", q.Message, def)
		} else {
			fmt.Fprintf(l.w, "%s ", q.Message)
		}

		line, err := l.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return q.Default, nil
			}
			return nil, fmt.Errorf("reading %s: %w", q.Name, err)
		}

		v := q.Convert(strings.TrimRight(line, "\r\n"))
		if err := q.Check(v); err != nil {
			fmt.Fprintf(l.w, ">> %v\n", err)
			continue
		}
		return v, nil
	}
}

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name string
		v    Verbosity
		want log.Level
	}{
		{"normal", Normal, log.InfoLevel},
		{"silent", Silent, log.ErrorLevel},
		{"verbose", Verbose, log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(&bytes.Buffer{}, tt.v)
			if got := l.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_SilentDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Silent)
	l.Info("hello")
	if strings.Contains(buf.String(), "hello") {
		t.Errorf("silent logger wrote info message: %q", buf.String())
	}
}

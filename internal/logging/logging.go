// Package logging builds the charmbracelet/log logger shared by the CLI and
// the create pipeline.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Verbosity selects the logger level.
type Verbosity int

const (
	Normal Verbosity = iota
	Silent
	Verbose
)

// New returns a logger writing to w at the level implied by v.
func New(w io.Writer, v Verbosity) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "create-package-json",
	})
	switch v {
	case Silent:
		logger.SetLevel(log.ErrorLevel)
	case Verbose:
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything. Used as the zero value by
// packages that accept an optional logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

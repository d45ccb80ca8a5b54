package qsim

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns a levelled logger writing to stderr. Unknown levels fall back to info.
func NewLogger(level string) *log.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "qsim",
		Level:           lvl,
		ReportTimestamp: true,
	})
}

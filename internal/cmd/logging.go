package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a text logger at the named level (debug, info, warn,
// error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

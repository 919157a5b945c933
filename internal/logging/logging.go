// Package logging builds the application's slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options selects the output format and minimum level.
type Options struct {
	Level  string // debug, info, warn or error
	Format string // json or text
}

// New returns a logger writing to w that includes request-scoped attributes
// from the context.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(opts.Level))); err != nil {
		if opts.Level != "" {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = slog.LevelInfo
	}
	ho := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "json":
		h = slog.NewJSONHandler(w, ho)
	case "text":
		h = slog.NewTextHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(NewContextHandler(h)), nil
}

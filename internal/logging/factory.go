package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// New returns a Logger for the configured format: "text" (default),
// "json", "zap" or "zap-dev".
func New(format string, w io.Writer) (Logger, error) {
	switch format {
	case "", "text":
		return NewTextLogger(w, slog.LevelInfo), nil
	case "json":
		return NewJSONLogger(w, slog.LevelInfo), nil
	case "zap":
		return NewZapLogger("prod")
	case "zap-dev":
		return NewZapLogger("dev")
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

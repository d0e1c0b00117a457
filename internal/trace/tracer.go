package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events from Start, End and Point. Implementations must
// accept Emit from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error // сначала Flush
	Level() Level
	Enabled() bool
}

// Config describes where and how to trace.
type Config struct {
	Level  Level
	Format Format
	// Output wins over OutputPath. An empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
}

// New returns Nop for LevelOff and a StreamTracer otherwise. FormatAuto
// picks NDJSON for .ndjson and .jsonl paths and text for everything else.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Format == FormatAuto {
		switch filepath.Ext(cfg.OutputPath) {
		case ".ndjson", ".jsonl":
			cfg.Format = FormatNDJSON
		default:
			cfg.Format = FormatText
		}
	}

	w := cfg.Output
	switch {
	case w != nil:
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		w = keepOpen{os.Stderr}
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		w = f
	}
	return NewStreamTracer(w, cfg.Level, cfg.Format), nil
}

// keepOpen shields a shared writer such as stderr from Close.
type keepOpen struct{ io.Writer }

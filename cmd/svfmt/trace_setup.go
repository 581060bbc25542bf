package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"svfmt/internal/trace"
)

// tracing owns the tracer of one command run.
type tracing struct {
	tracer trace.Tracer
	format trace.Format
	stderr io.Writer
}

// setupTracing reads the --trace* flags and attaches a tracer to the command
// context.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	flags := cmd.Root().PersistentFlags()
	var values [4]string
	for i, name := range []string{"trace", "trace-level", "trace-mode", "trace-format"} {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		values[i] = v
	}
	output, levelStr, modeStr, formatStr := values[0], values[1], values[2], values[3]

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{Level: level, Mode: mode, Format: format, OutputPath: output})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	return &tracing{tracer: tracer, format: format, stderr: cmd.ErrOrStderr()}, nil
}

// close flushes the tracer. The in-memory ring is printed only when the run
// failed.
func (t *tracing) close(failed bool) {
	if ring := trace.RingOf(t.tracer); ring != nil && failed {
		fmt.Fprintln(t.stderr, "trace: last events before the failure:")
		if err := ring.Dump(t.stderr, t.format); err != nil {
			fmt.Fprintf(t.stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(t.stderr, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(t.stderr, "trace: close error: %v\n", err)
	}
}

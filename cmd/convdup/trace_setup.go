package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convdup/internal/trace"
)

// tracerConfig builds the tracer config from the persistent --trace flags.
// --trace without --trace-level traces phases.
func tracerConfig(cmd *cobra.Command) (trace.Config, error) {
	flags := cmd.Root().PersistentFlags()
	output, err := flags.GetString("trace")
	if err != nil {
		return trace.Config{}, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelName, err := flags.GetString("trace-level")
	if err != nil {
		return trace.Config{}, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatName, err := flags.GetString("trace-format")
	if err != nil {
		return trace.Config{}, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	cfg := trace.Config{OutputPath: output}
	if cfg.Level, err = trace.ParseLevel(levelName); err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(formatName); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && output != "" {
		cfg.Level = trace.LevelPhase
	}
	return cfg, nil
}

// setupTracing attaches a tracer to the command context and returns the
// function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := tracerConfig(cmd)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}
	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

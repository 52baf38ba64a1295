package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cclex/internal/trace"
)

var activeTracer trace.Tracer = trace.Nop

func registerTraceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
}

// startTracing inspects trace-related flags and attaches a tracer to the
// command context.
func startTracing(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: traceOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	activeTracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

// stopTracing flushes and closes the tracer opened by startTracing.
// It runs after the command whether or not it failed.
func stopTracing(errOut io.Writer) {
	t := activeTracer
	activeTracer = trace.Nop
	if err := t.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := t.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cclex/internal/project"
	"cclex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cclex",
	Short: "Lexical scanner for a small C-like language",
	Long: `cclex turns C-like source files into token streams and reports
lexical errors (unknown characters, unterminated strings, malformed numbers).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// main registers subcommands and persistent flags and executes the root command.
// Any command error exits with status 1.
func main() {
	setupRoot()
	err := rootCmd.ExecuteContext(context.Background())
	stopProfiling(os.Stderr)
	stopTracing(os.Stderr)
	if err != nil {
		var exit exitError
		if !asExitError(err, &exit) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

var setupOnce sync.Once

func setupRoot() {
	setupOnce.Do(func() {
		// Устанавливаем версию для автоматического флага --version
		rootCmd.Version = version.Get().Version

		rootCmd.AddCommand(tokenizeCmd)
		rootCmd.AddCommand(replCmd)
		rootCmd.AddCommand(versionCmd)
		rootCmd.AddCommand(initCmd)

		// Глобальные флаги
		rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
		rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
		rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
		rootCmd.PersistentFlags().Int("max-diagnostics", project.DefaultMaxDiagnostics, "maximum number of diagnostics per file")
		registerTraceFlags(rootCmd)
		registerProfileFlags(rootCmd)
	})
}

func preRun(cmd *cobra.Command, args []string) error {
	if err := startTracing(cmd, args); err != nil {
		return err
	}
	return startProfiling(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for the given output stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

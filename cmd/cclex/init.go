package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cclex/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default cclex.toml",
	Long: `Init writes a cclex.toml with the default settings into [dir] (the
current directory when omitted). The directory is created if needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing cclex.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	path, err := project.WriteDefault(target, force)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created %s\n", path)
		fmt.Fprintln(out, "CCLEX_* variables and command flags override it per run")
	}
	return nil
}

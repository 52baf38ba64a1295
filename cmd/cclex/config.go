package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cclex/internal/diag"
	"cclex/internal/diagfmt"
	"cclex/internal/project"
	"cclex/internal/source"
)

// loadSettings builds the effective configuration for a run started in
// startDir. Precedence: flags > CCLEX_* environment > cclex.toml > defaults.
func loadSettings(cmd *cobra.Command, startDir string) (*project.Manifest, error) {
	m, _, err := project.LoadManifest(startDir)
	if err != nil {
		var me *project.ManifestError
		if errors.As(err, &me) {
			return nil, reportManifestError(cmd, me)
		}
		return nil, err
	}
	if err := m.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, m); err != nil {
		return nil, err
	}
	return m, m.Validate()
}

func applyFlags(cmd *cobra.Command, m *project.Manifest) error {
	root := cmd.Root().PersistentFlags()
	if root.Changed("max-diagnostics") {
		v, err := root.GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		m.Lex.MaxDiagnostics = v
	}

	flags := cmd.Flags()
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		v, err := flags.GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		m.Lex.Jobs = v
	}
	if f := flags.Lookup("cache"); f != nil && f.Changed {
		v, err := flags.GetBool("cache")
		if err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
		m.Cache.Enabled = v
	}
	if f := flags.Lookup("cache-dir"); f != nil && f.Changed {
		v, err := flags.GetString("cache-dir")
		if err != nil {
			return fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
		m.Cache.Dir = v
	}
	return nil
}

// reportManifestError prints a broken cclex.toml as a PRJ5001 diagnostic.
func reportManifestError(cmd *cobra.Command, me *project.ManifestError) error {
	fs := source.NewFileSet()
	d, err := me.Diagnostic(fs)
	if err != nil {
		return me
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	bag := diag.NewBag(1)
	bag.Add(d)
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: colored, PathMode: diagfmt.PathModeAuto})
	return exitError{reason: me.Error()}
}

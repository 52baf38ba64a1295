package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cclex/internal/diag"
	"cclex/internal/diagfmt"
	"cclex/internal/driver"
	"cclex/internal/source"
	"cclex/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|dir|->",
	Short: "Tokenize C-like source files",
	Long: `Tokenize breaks a source file, every matching file of a directory, or
standard input ("-") into tokens and reports lexical diagnostics on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files for directories (0 - GOMAXPROCS)")
	tokenizeCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams from the disk cache")
	tokenizeCmd.Flags().String("cache-dir", "", "disk cache directory (default from cclex.toml)")
	tokenizeCmd.Flags().Bool("fail-on-invalid", false, "exit with status 1 if any Invalid token was produced")
}

type tokenizeRun struct {
	cmd           *cobra.Command
	out, errOut   io.Writer
	format        string
	color         bool
	quiet         bool
	failOnInvalid bool
	opts          driver.Options
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx := cmd.Context()

	run, err := newTokenizeRun(cmd, target)
	if err != nil {
		return err
	}
	defer printTimings(run.errOut, run.opts.Timer)

	if target == "-" {
		res, err := driver.TokenizeReader(ctx, "<stdin>", cmd.InOrStdin(), run.opts)
		if err != nil {
			return err
		}
		return run.emitSingle(res)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if info.IsDir() {
		return run.tokenizeDir(ctx, target)
	}
	res, err := driver.Tokenize(ctx, target, run.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	return run.emitSingle(res)
}

func newTokenizeRun(cmd *cobra.Command, target string) (*tokenizeRun, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	failOnInvalid, err := cmd.Flags().GetBool("fail-on-invalid")
	if err != nil {
		return nil, fmt.Errorf("failed to get fail-on-invalid flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}
	timer, err := newTimer(cmd)
	if err != nil {
		return nil, err
	}

	m, err := loadSettings(cmd, settingsDir(target))
	if err != nil {
		return nil, err
	}
	var cache *driver.DiskCache
	if m.Cache.Enabled {
		if cache, err = driver.OpenDiskCache(m.CacheDir()); err != nil {
			return nil, err
		}
	}

	return &tokenizeRun{
		cmd:           cmd,
		out:           cmd.OutOrStdout(),
		errOut:        cmd.ErrOrStderr(),
		format:        format,
		color:         colored,
		quiet:         quiet,
		failOnInvalid: failOnInvalid,
		opts: driver.Options{
			MaxDiagnostics: m.Lex.MaxDiagnostics,
			Jobs:           m.Lex.Jobs,
			Extensions:     m.Lex.Extensions,
			Cache:          cache,
			Timer:          timer,
		},
	}, nil
}

// settingsDir is where the cclex.toml lookup starts for target.
func settingsDir(target string) string {
	if target == "-" {
		return "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

func (r *tokenizeRun) emitSingle(res *driver.TokenizeResult) error {
	r.printDiagnostics(res.Bag, res.FileSet)

	endOut := r.opts.Timer.Track("output")
	var err error
	switch r.format {
	case "json":
		err = diagfmt.FormatTokensJSON(r.out, res.Tokens, res.FileSet)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(r.out, res.Tokens, res.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(r.out, res.Tokens, res.FileSet)
	}
	endOut("")
	if err != nil {
		return err
	}

	if invalid := res.InvalidCount(); r.failOnInvalid && invalid > 0 {
		return exitError{reason: fmt.Sprintf("%d invalid tokens", invalid)}
	}
	return nil
}

func (r *tokenizeRun) tokenizeDir(ctx context.Context, dir string) error {
	uiValue, err := r.cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
	)
	if !r.quiet && shouldUseTUI(mode) {
		files, listErr := driver.ListSourceFiles(dir, r.opts.Extensions)
		if listErr != nil {
			return listErr
		}
		fs, results, err = runDirWithUI(ctx, "tokenize "+dir, dir, files, r.opts)
	} else {
		fs, results, err = driver.TokenizeDir(ctx, dir, r.opts)
	}
	if err != nil {
		return err
	}

	merged := diag.NewBag(0) // Merge grows the cap
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()
	r.printDiagnostics(merged, fs)

	span, _ := trace.StartSpan(ctx, trace.ScopePass, "output")
	endOut := r.opts.Timer.Track("output")
	err = r.writeDir(fs, results)
	endOut("")
	span.End(r.format)
	if err != nil {
		return err
	}

	var tokens, invalid, failed, cached int
	for _, res := range results {
		if res.Tokens == nil {
			failed++
			continue
		}
		tokens += len(res.Tokens)
		invalid += driver.CountInvalid(res.Tokens)
		if res.Cached {
			cached++
		}
	}
	if !r.quiet {
		fmt.Fprintf(r.errOut, "%d files, %d tokens, %d invalid, %d cached\n", len(results), tokens, invalid, cached)
	}

	switch {
	case failed > 0:
		return exitError{reason: fmt.Sprintf("%d files failed to load", failed)}
	case r.failOnInvalid && invalid > 0:
		return exitError{reason: fmt.Sprintf("%d invalid tokens", invalid)}
	}
	return nil
}

func (r *tokenizeRun) writeDir(fs *source.FileSet, results []driver.TokenizeDirResult) error {
	if r.format == "pretty" {
		for _, res := range results {
			if res.Tokens == nil {
				continue
			}
			if _, err := fmt.Fprintf(r.out, "== %s ==\n", res.Path); err != nil {
				return err
			}
			if err := diagfmt.FormatTokensPretty(r.out, res.Tokens, fs); err != nil {
				return err
			}
		}
		return nil
	}

	jsonOpts := diagfmt.JSONOpts{IncludePositions: true, PathMode: diagfmt.PathModeRelative, IncludeNotes: true}
	files := make([]diagfmt.FileOutput, 0, len(results))
	for _, res := range results {
		files = append(files, diagfmt.BuildFileOutput(res.FileID, res.Tokens, res.Bag, fs, jsonOpts))
	}
	if r.format == "msgpack" {
		return diagfmt.FormatFilesMsgpack(r.out, files)
	}
	return diagfmt.FormatFilesJSON(r.out, files)
}

func (r *tokenizeRun) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(r.errOut, bag, fs, diagfmt.PrettyOpts{
		Color:     r.color,
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cclex/internal/driver"
	"cclex/internal/source"
	"cclex/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runDirWithUI runs TokenizeDir while a Bubble Tea progress view renders its
// events on stderr.
func runDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// view is gone; keep draining so the run can finish
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

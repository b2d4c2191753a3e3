package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"minic/internal/driver"
	"minic/internal/ui"
)

var errInterrupted = errors.New("interrupted")

type checkOutcome struct {
	result *driver.DirResult
	err    error
}

// runCheckDirWithUI checks dir while a progress view renders to out. Quitting
// the view early cancels the remaining files.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.Options, out io.Writer) (*driver.DirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.ProgressEvent) { events <- ev }
		res, err := driver.AnalyzeDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, dir, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	final, uiErr := program.Run()

	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	if !ui.Finished(final) {
		return outcome.result, errInterrupted
	}
	return outcome.result, outcome.err
}

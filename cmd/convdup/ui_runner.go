package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"convdup/internal/config"
	"convdup/internal/driver"
	"convdup/internal/ui"
)

type scanOutcome struct {
	batch *driver.Batch
	err   error
}

// runScanWithUI runs the batch in the background and renders its progress
// events on stderr until the batch finishes. Quitting the UI early (Ctrl+C)
// cancels the batch.
func runScanWithUI(ctx context.Context, title string, files []string, cfg *config.Config, opts driver.Options) (*driver.Batch, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.ProgressEvent) { events <- ev }
		batch, err := driver.AnalyzeFiles(ctx, files, cfg, optsCopy)
		outcomeCh <- scanOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// канал закрывается только после отправки результата
	select {
	case outcome := <-outcomeCh:
		return outcome.batch, outcome.err
	default:
	}

	// модель вышла раньше пакета: отменяем и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err == nil {
		outcome.err = uiErr
	}
	if outcome.err == nil {
		outcome.err = context.Canceled
	}
	return outcome.batch, outcome.err
}

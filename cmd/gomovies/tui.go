package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/config"
	"github.com/amaumene/gomovies/internal/ui"
	"github.com/amaumene/gomovies/pkg/logger"
)

// runTUI logs to LOG_FILE since the terminal belongs to the UI.
func runTUI(parent context.Context, cfg *config.Config) error {
	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	defer logFile.Close()
	log := logger.NewWithOptions(cfg.LogLevel, logFile)

	d := initialize(cfg, log)
	defer d.Close()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controller := app.NewController(d.finder, app.Options{
		DebounceDelay: cfg.DebounceDelay(),
		TrendingLimit: cfg.TrendingLimit,
		Logger:        log,
	})
	model := ui.NewModel(controller)
	defer model.Close()

	go controller.Run(ctx)

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(os.Stdin)).Run()

	cancel()
	<-controller.Done()
	d.finder.Wait()

	if err != nil {
		log.Errorf("[App] terminal UI failed: %v", err)
		return err
	}
	return nil
}

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/sandeepkv93/todosync/internal/config"
	"github.com/sandeepkv93/todosync/internal/gateway"
	"github.com/sandeepkv93/todosync/internal/scheduler"
	"github.com/sandeepkv93/todosync/internal/update"
)

var errNoTerminal = errors.New("todosync needs an interactive terminal; use `todosync serve` for the headless server")

func runTUI(cfg config.Runtime) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	alerts, err := scheduler.NewSlotTimer(cfg.ErrorTimeout(), 4)
	if err != nil {
		return err
	}
	defer alerts.Stop()

	client := gateway.NewClient(cfg.BaseURL, gateway.WithTimeout(cfg.RequestTimeout()))
	logger.Info("starting", "base_url", client.BaseURL(), "user_id", cfg.UserID)

	program := tea.NewProgram(update.NewModel(cfg, client, alerts, logger), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// newLogger writes to the log file when debugging; stdout belongs to the UI.
func newLogger(cfg config.Runtime) (*slog.Logger, func(), error) {
	if !cfg.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "todosync")
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

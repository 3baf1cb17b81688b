package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/rankview/internal/client"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
	"github.com/alexisbeaulieu97/rankview/internal/tui"
)

var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func runUI(flags *rootFlags, form *formFlags) error {
	cfg, err := loadConfig(flags, nil)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to a file.
	log := logger.Discard()
	if cfg.LogFile != "" {
		log, err = logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: true, File: cfg.LogFile})
		if err != nil {
			return newCommandError("open log file", cfg.LogFile, err, "Choose a writable log_file or unset RANKVIEW_LOG_FILE.")
		}
		defer log.Close()
	}

	c, err := client.New(client.Options{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.RequestTimeout,
		Logger:   log,
	})
	if err != nil {
		return newCommandError("configure client", cfg.Endpoint, err, "Pass a full http(s) URL to --endpoint.")
	}

	log.With("endpoint", c.URL()).Info("starting terminal UI")

	m := tui.NewModel(tui.Options{
		Evaluator:      c,
		Logger:         log,
		Fields:         form.mergedFields(cfg),
		Endpoint:       cfg.Endpoint,
		JobDescription: form.jobDescription,
		Candidates:     form.candidates,
	})
	if err := runProgram(m); err != nil {
		return newCommandError("run terminal UI", cfg.Endpoint, err, "Run rankview from an interactive terminal, or use 'rankview evaluate'.")
	}
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/app"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start the practice TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	practiceCmd.Flags().Int("count", 0, "Default number of exercises per session")
	_ = v.BindPFlag("count", practiceCmd.Flags().Lookup("count"))
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, closeLog, err := fileLogger(cfg.LogFile, cfg.Level())
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	orch := session.NewOrchestrator(session.Deps{
		Vocabulary: st.VocabularyRepo(),
		Progress:   st.ProgressRepo(),
		Events:     st.EventRepo(),
		Logger:     logger,
	})
	registry := session.NewRegistry(orch, cfg.SessionIdleTimeout, logger)
	if err := registry.StartSweeper(); err != nil {
		return err
	}
	defer registry.Stop()

	logger.Info("starting tui", "user", cfg.User, "course", cfg.Course, "driver", cfg.Driver)
	return app.Run(app.Options{
		Sessions:   registry,
		Vocabulary: st.VocabularyRepo(),
		Progress:   st.ProgressRepo(),
		Events:     st.EventRepo(),
		Demoter:    mastery.NewService(st.ProgressRepo(), logger),
		User:       cfg.User,
		Course:     cfg.Course,
		Count:      cfg.Count,
		Logger:     logger,
	})
}

// fileLogger opens path for appending and returns a logger writing to it.
// The TUI owns the terminal, so nothing may be logged to stderr.
func fileLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), func() { f.Close() }, nil
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/store"
)

var (
	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vocabdrill",
	Short: "Spaced repetition vocabulary practice",
	Long:  "vocabdrill is a terminal app that drills course vocabulary with gap-fill and multiple-choice exercises.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(v, configFile, ".env")
		if err != nil {
			return err
		}
		cfg = c
		slog.SetDefault(newLogger(os.Stderr, cfg.Level()))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("db", "", "SQLite database path or PostgreSQL DSN (overrides VOCABDRILL_DB)")
	flags.String("driver", "", "Database driver: sqlite or postgres")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Log file used while the TUI is running")
	flags.String("user", "", "Learner id")
	flags.String("course", "", "Course code")

	for key, flag := range map[string]string{
		config.KeyDB:       "db",
		config.KeyDriver:   "driver",
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
		config.KeyUser:     "user",
		config.KeyCourse:   "course",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(demoteCmd)
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Driver, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// requireCourse returns the configured course or an error naming the flag.
func requireCourse() (string, error) {
	if cfg.Course == "" {
		return "", fmt.Errorf("no course selected: pass --course or set VOCABDRILL_COURSE")
	}
	return cfg.Course, nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kotoba",
		Short: "Study Japanese vocabulary with flashcards and quizzes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debug)
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./config.yml or $HOME/.config/kotoba/config.yml)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newStudyCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newExportCommand())
	return rootCmd
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))
	slog.SetDefault(logger)
}

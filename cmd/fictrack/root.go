// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure, loads config, and opens the story database

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/storage"
)

var (
	dbPath  string
	verbose bool
	cfg     *config.Config
	store   storage.Store
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fictrack",
	Short: "Web fiction trending metrics tracker with MCP integration",
	Long: `
███████╗██╗ ██████╗████████╗██████╗  █████╗  ██████╗██╗  ██╗
██╔════╝██║██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝
█████╗  ██║██║        ██║   ██████╔╝███████║██║     █████╔╝
██╔══╝  ██║██║        ██║   ██╔══██╗██╔══██║██║     ██╔═██╗
██║     ██║╚██████╗   ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗
╚═╝     ╚═╝ ╚═════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝

Track trending web fiction metrics over time.

Scrape the trending listing on a schedule, keep append-only metric
history per story, and explore growth through the CLI, a dashboard,
or MCP tools for AI agents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		// version needs neither config defaults written nor a database
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dbPath != "" {
			store, err = storage.NewSQLiteStore(dbPath)
		} else {
			store, err = cfg.OpenStorage()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file path (default: ~/.local/share/fictrack/fictrack.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

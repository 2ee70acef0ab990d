// ABOUTME: Serve command running the JSON dashboard HTTP server
// ABOUTME: Shuts down gracefully on SIGINT/SIGTERM

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/fictrack/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON dashboard API",
	Long: `Serve the dashboard HTTP API: story listings, metric history, growth,
genre and correlation analysis, and scrape sessions as JSON, plus a
minimal index page.

Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(store, logger)
		fmt.Printf("Dashboard listening on %s\n", addr)
		if err := srv.Run(ctx, addr); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (defaults to config listen_addr)")
}

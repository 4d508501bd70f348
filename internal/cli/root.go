// Package cli defines the crickstore command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

// NewRootCmd builds the crickstore command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "crickstore",
		Short: "CrickStore - inventory and sales tracker for a cricket equipment shop",
		Long: `CrickStore keeps the shop inventory and the sales history in memory.

Run it as an HTTP API with "serve" or interactively in the terminal with "tui".
"notify" turns the sale events published by "serve" into low stock alerts.
Configuration comes from config.yaml, a .env file and CRICKSTORE_* environment variables.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to the YAML config file (default config.yaml)")

	rootCmd.AddCommand(newServeCmd(opts), newTUICmd(opts), newNotifyCmd(opts))
	return rootCmd
}

// Execute runs the root command until it finishes or the process receives SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

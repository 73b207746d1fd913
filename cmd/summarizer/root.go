package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/summarizer/app"
	"github.com/use-agent/summarizer/config"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarizer",
		Short: "Search, render and extract web content for LLM agents",
		Long: `summarizer resolves queries to URLs, renders pages in a hardened headless
browser, extracts site-specific content and persists it next to a screenshot.

Configuration is read from the environment (and a .env file when present).

Examples:
  # Run the HTTP API
  summarizer serve

  # Render a page and write its artifacts
  summarizer browse https://github.com/go-rod/rod

  # Search, then render the top result
  summarizer browse --query "go-rod stealth"

  # Fetch paragraph text without a browser
  summarizer fetch https://example.com`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadServices loads configuration, sets up logging on stderr and wires the
// services. --verbose forces debug logging.
func loadServices(cmd *cobra.Command) (*app.Services, error) {
	cfg := config.Load()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	config.SetupLogger(cfg.Log, cmd.ErrOrStderr())
	return app.New(cfg, app.Options{})
}

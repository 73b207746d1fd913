// Command summarizer-mcp serves the content-acquisition and workspace tools
// over MCP on stdio. Logs go to stderr since stdout carries the protocol.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/summarizer/app"
	"github.com/use-agent/summarizer/config"
	"github.com/use-agent/summarizer/tools"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg.Log, os.Stderr)

	svc, err := app.New(cfg, app.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := tools.NewServer("summarizer", version(), svc.Tools())
	slog.Info("MCP server starting",
		"converter", svc.Converter.Name(),
		"artifactDir", svc.Artifacts.Dir(),
		"workspace", svc.Workspace.Getwd(),
	)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// Socramine: Redmine project reporting MCP server
//
// A stdio MCP server that answers project tracking questions from a
// Redmine backend: fiscal week and month reports, estimated hours,
// earned value, and team plans and achievements.
//
// Usage:
//
//	socramine serve     # Start MCP server (stdio transport)
//	socramine update    # Update to the latest version
//	socramine version   # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thinkforbl/mcp-socramine/internal/config"
	srv "github.com/thinkforbl/mcp-socramine/internal/server"
	"github.com/thinkforbl/mcp-socramine/internal/updater"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "socramine",
	Short: "Redmine project reporting MCP server",
	Long: `Socramine is an MCP server that answers project tracking questions from a
Redmine backend: fiscal week and month reports, estimated hours, earned
value, and team plans and achievements.

Add it to your AI tool's MCP config:

  {
    "mcpServers": {
      "socramine": {
        "command": "socramine",
        "args": ["serve"]
      }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	RunE:  runServe,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update to the latest version",
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("socramine v%s\n", srv.Version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "",
		"Path to the settings file (default ~/.socramine/config.yaml)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	s, cleanup, err := srv.New(settings, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	logger.Info("serving on stdio",
		zap.String("version", srv.Version),
		zap.String("redmine_url", settings.Redmine.URL),
	)
	return server.ServeStdio(s)
}

// buildLogger builds a production zap logger. Everything goes to stderr;
// stdout belongs to the MCP transport.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(srv.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: socramine update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(srv.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(srv.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart socramine to use the new version.\n")
}

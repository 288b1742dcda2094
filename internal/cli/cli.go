// Package cli implements the folio command-line interface.
//
// # Commands
//
// The main commands are:
//   - desktop: Run the featured-applications desktop in the terminal
//   - apps: List the catalog or show one app's details
//   - replay: Apply a recorded gesture script to a fresh desktop
//   - serve: Serve the catalog and replays over HTTP
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/folio/config.toml (or --config),
// and command-line flags override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "folio"

	// defaultAddr is the default listen address of the serve command.
	defaultAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Folio is a desktop of featured applications",
		Long:         `Folio shows a portfolio's featured applications as icons on a desktop. Drag icons to rearrange them and double-click to open an app's details.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/folio/config.toml)")

	// Register all subcommands
	root.AddCommand(c.desktopCommand())
	root.AddCommand(c.appsCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

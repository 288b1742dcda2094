package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/internal/tui"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/desktop"
	"github.com/matzehuels/folio/pkg/errors"
)

// desktopOpts holds the command-line flags for the desktop command.
type desktopOpts struct {
	catalog string  // catalog file; empty uses the config or the embedded default
	margin  float64 // inset from the container edges
	fps     int     // animation frame rate
	logFile string  // where to write logs while the terminal is in use
}

// desktopCommand creates the desktop command that runs the terminal UI.
func (c *CLI) desktopCommand() *cobra.Command {
	var opts desktopOpts

	cmd := &cobra.Command{
		Use:   "desktop",
		Short: "Run the featured-applications desktop in the terminal",
		Long: `Run the featured-applications desktop in the terminal.

Drag an icon with the mouse to move it; it is dropped centered under the
pointer and kept inside the window. Double-click an icon to open its details.
Esc cancels a drag or closes the details, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			cfg := fc.desktopConfig()
			if cmd.Flags().Changed("margin") {
				cfg.Margin = opts.margin
			}
			if cmd.Flags().Changed("fps") {
				cfg.FPS = opts.fps
			}

			cat, err := loadCatalog(opts.catalog, fc)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs go to a file or nowhere.
			var logOut io.Writer = io.Discard
			if opts.logFile != "" {
				f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "open log file %s", opts.logFile)
				}
				defer f.Close()
				logOut = f
			}
			logger := newLogger(logOut, c.Logger.GetLevel())

			d, err := desktop.New(cat, cfg, logger)
			if err != nil {
				return err
			}
			m := tui.New(d, tui.Options{Cell: fc.cell(), Logger: logger})
			logger.Info("desktop started", "apps", cat.Len())
			return tui.Run(cmd.Context(), m)
		},
	}

	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "catalog file (TOML)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "keep icons this many pixels away from the edges")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "animation frame rate")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	return cmd
}

// loadCatalog loads the catalog named by flag, then by the config file, and
// falls back to the embedded default.
func loadCatalog(flag string, fc *fileConfig) (*catalog.Catalog, error) {
	path := flag
	if path == "" {
		path = expandHome(fc.Desktop.Catalog)
	}
	return catalog.Load(path)
}

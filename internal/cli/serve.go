package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/internal/server"
)

// serveCommand creates the serve command that exposes the catalog and
// replays over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var catalogPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and gesture replays over HTTP",
		Long: `Serve the catalog and gesture replays over HTTP.

Endpoints:
  GET  /healthz         liveness and version
  GET  /api/apps        the catalog
  GET  /api/apps/{id}   one app
  POST /api/replay      replay a gesture script (JSON, or TOML with ?format=toml)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			fc, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(catalogPath, fc)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = fc.addr()
			}

			srv, err := server.New(server.Config{
				Catalog: cat,
				Desktop: fc.desktopConfig(),
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			printKeyValue(cmd.OutOrStdout(), "Listening", addr)
			printNextStep(cmd.OutOrStdout(), "List the catalog", "curl http://localhost"+portOf(addr)+"/api/apps")
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (TOML)")
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ""
}

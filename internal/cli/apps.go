package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/internal/tui"
	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/errors"
)

// appsCommand creates the apps command with its show subcommand.
func (c *CLI) appsCommand() *cobra.Command {
	var catalogPath, format string

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the featured applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog(catalogPath)
			if err != nil {
				return err
			}
			return writeApps(cmd.OutOrStdout(), cat, format)
		},
	}
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (TOML)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one application",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			cat, err := c.catalog(catalogPath)
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, a := range cat.Apps() {
				if strings.HasPrefix(a.ID, toComplete) {
					ids = append(ids, a.ID)
				}
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog(catalogPath)
			if err != nil {
				return err
			}
			app, ok := cat.Get(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "unknown app %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDetail(app, 72))
			return nil
		},
	})

	return cmd
}

// catalog resolves the catalog from the flag or the config file.
func (c *CLI) catalog(flag string) (*catalog.Catalog, error) {
	fc, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	return loadCatalog(flag, fc)
}

func writeApps(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.Apps())
	case formatTable:
		rows := make([][]string, 0, cat.Len())
		for _, a := range cat.Apps() {
			rows = append(rows, []string{a.ID, a.Title, a.Category, a.LaunchDate, formatPoint(a.Position.X, a.Position.Y)})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(styleBorder).
			Headers("ID", "Title", "Category", "Launched", "Position").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return styleHeader
				case col == 1:
					return StyleValue.Bold(true)
				case col == 4:
					return StyleNumber
				}
				return StyleDim
			})
		fmt.Fprintln(w, t.Render())
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want table or json)", format)
}

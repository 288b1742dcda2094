package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/desktop"
	"github.com/matzehuels/folio/pkg/errors"
)

// replayCommand creates the replay command that applies a gesture script to
// a fresh desktop.
func (c *CLI) replayCommand() *cobra.Command {
	var catalogPath, format string

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a recorded gesture script",
		Long: `Replay a recorded gesture script against a fresh desktop.

The script is a TOML or JSON file with a container rectangle and a list of
pointer events (press, move, release, leave) or launch requests. Event times
come from the script, so a replay always produces the same placements.`,
		Args: cobra.ExactArgs(1),
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
			script, err := desktop.ImportScript(args[0])
			if err != nil {
				return err
			}
			logger.Debug("script loaded", "path", args[0], "events", len(script.Events))

			prog := newProgress(logger)
			res, err := desktop.Replay(cat, fc.desktopConfig(), script, logger)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Replayed %d events", len(res.Steps)))

			return writeReplay(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (TOML)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")

	return cmd
}

func writeReplay(w io.Writer, res *desktop.Result, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatTable:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want table or json)", format)
	}

	rows := make([][]string, 0, len(res.Placements))
	for _, e := range res.Placements {
		rows = append(rows, []string{e.ID, formatPoint(e.Position.X, e.Position.Y)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Icon", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Fprintln(w, StyleTitle.Render("Placements"))
	fmt.Fprintln(w, t.Render())

	var rejected []desktop.Step
	for _, s := range res.Steps {
		if s.Outcome == desktop.Committed {
			printArrow(w, s.ID, formatPoint(s.Position.X, s.Position.Y))
		}
		if s.Error != "" {
			rejected = append(rejected, s)
		}
	}
	if len(rejected) > 0 {
		printWarning(w, "%d events had no effect", len(rejected))
		for _, s := range rejected {
			printDetail(w, "%s at %dms: %s", s.Event.Kind, s.Event.At, s.Error)
		}
	}
	if len(res.Launches) == 0 {
		printInfo(w, "No apps launched")
		return nil
	}
	for _, id := range res.Launches {
		printSuccess(w, "Launched %s", id)
	}
	return nil
}

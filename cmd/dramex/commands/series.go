package commands

import (
	"fmt"

	"dramex-logger/cmd/dramex/globals"
	"dramex-logger/internal/snapshotlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	seriesItem string
	seriesCsv  bool
)

func init() {
	seriesCmd.Flags().StringVar(&seriesItem, "item", "", "Only show the points of this item.")
	seriesCmd.Flags().BoolVar(&seriesCsv, "csv", false, "Write the series as CSV (with a timestamp column) instead of a table.")
	rootCmd.AddCommand(seriesCmd)
}

var seriesCmd = &cobra.Command{
	Use:   "series [--item <name>] [--csv]",
	Short: "Folds every snapshot in the log into one time series.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		series, err := g.Log.LoadSeries(snapshotlog.DefaultAliases)
		if err != nil {
			return err
		}

		points := series.Points
		if seriesItem != "" {
			points = series.ForItem(seriesItem)
			if len(points) == 0 {
				return fmt.Errorf("no points for item %q, known items: %q", seriesItem, series.Items())
			}
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{
			"Timestamp",
			"Item",
			"Daily High",
			"Daily Low",
			"Session High",
			"Session Low",
			"Session Average",
			"Session Change",
		})
		for _, p := range points {
			t.AppendRow(table.Row{
				p.Time.Format("2006-01-02 15:04"),
				p.Item,
				p.DailyHigh,
				p.DailyLow,
				p.SessionHigh,
				p.SessionLow,
				p.SessionAverage,
				p.SessionChange,
			})
		}

		if seriesCsv {
			t.RenderCSV()
			return nil
		}
		t.Render()
		return nil
	},
}

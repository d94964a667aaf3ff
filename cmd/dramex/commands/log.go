package commands

import (
	"path/filepath"

	"dramex-logger/cmd/dramex/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log [--dir <path/to/log>]",
	Short: "Lists the snapshots in the log, oldest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		entries, err := g.Log.List()
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Update Time", "File", "Rows"})
		for _, e := range entries {
			var rows any = "?"
			snapshot, err := g.Log.Read(e)
			if err != nil {
				g.Tel.ReportWarning("log.read", e.Path, err)
			} else {
				rows = len(snapshot.Rows)
			}
			t.AppendRow(table.Row{
				e.Token.Time().Format("2006-01-02 15:04"),
				filepath.Base(e.Path),
				rows,
			})
		}
		t.AppendFooter(table.Row{"", "Snapshots", len(entries)})
		t.Render()
		return nil
	},
}

package commands

import (
	"fmt"
	"log/slog"
	"time"

	"dramex-logger/cmd/dramex/globals"
	"dramex-logger/internal/pipeline"
	"dramex-logger/internal/scrapers/dramexchange"

	"github.com/spf13/cobra"
)

var scrapeUrl string

func init() {
	scrapeCmd.Flags().StringVar(&scrapeUrl, "url", "", "Page to scrape, defaults to the url in the config.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--url <page>] [--dir <path/to/log>]",
	Short: "Scrapes the spot price table once and appends a snapshot to the log.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		url := g.Config.Url
		if scrapeUrl != "" {
			url = scrapeUrl
		}

		client := dramexchange.NewClient(g.Config.ClientOptions(), g.Tel)
		p := pipeline.New(client, g.Log, g.Config.PipelineOptions(), g.Tel)

		t1 := time.Now()
		result, err := p.Run(cmd.Context(), url)
		if err != nil {
			g.Tel.ReportBroken("pipeline.run", err, result.Stage.String(), url)
			return fmt.Errorf("scrape failed: %w", err)
		}

		slog.Info(
			"scrape finished",
			"token", result.Token.String(),
			"rows", result.Rows,
			"seconds", time.Since(t1).Seconds(),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s\n", result.Path)
		return nil
	},
}

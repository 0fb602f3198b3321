package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "days",
		Short:        'd',
		DefaultValue: 7,
		Usage:        "specifies the trailing window of the event trend in days",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "top",
		Short:        't',
		DefaultValue: 5,
		Usage:        "specifies how many of the busiest assets to show",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "watch",
		Short:        'w',
		DefaultValue: false,
		Usage:        "keeps refreshing the summary until interrupted",
		Type:         cli.FlagTypeBool,
	},
	{
		Name:         "interval",
		DefaultValue: 30 * time.Second,
		Usage:        "specifies the refresh interval used with --watch",
		Type:         cli.FlagTypeDuration,
	},
}

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"s"},
	Short:   "Shows the dashboard summary",
	Long:    "Shows the event trend, the alert severity breakdown, and the busiest assets",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cli.GetGatewayClient("watchtower/summary")
		if err != nil {
			return err
		}
		days := viper.GetInt("days")
		top := viper.GetInt("top")
		if err := showSummary(cmd.Context(), client, days, top); err != nil {
			return err
		}
		if !viper.GetBool("watch") {
			return nil
		}
		interval := viper.GetDuration("interval")
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-time.After(interval):
			}
			if err := showSummary(cmd.Context(), client, days, top); err != nil {
				return err
			}
		}
	},
}

type summaryOutput struct {
	Trend    []gateway.EventTrendPoint `json:"trend"`
	Severity []gateway.SeverityCount   `json:"severity"`
	Sources  []gateway.SourceCount     `json:"sources"`
}

func showSummary(ctx context.Context, client *gateway.Client, days, top int) error {
	trend, err := client.GetEventTrend(ctx, days)
	if err != nil {
		return err
	}
	severity, err := client.GetSeverityBreakdown(ctx)
	if err != nil {
		return err
	}
	sources, err := client.GetTopSources(ctx, top)
	if err != nil {
		return err
	}

	if viper.GetString("output") == "json" {
		output, err := json.MarshalIndent(summaryOutput{
			Trend:    trend,
			Severity: severity,
			Sources:  sources,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialise summary: %s", err)
		}
		fmt.Println(string(output))
		return nil
	}

	trendTable := cli.NewTable(cli.NewTableOpts{Headers: []string{"date", "events"}})
	for _, point := range trend {
		if err := trendTable.NewRow(point.Date, point.Count); err != nil {
			return err
		}
	}
	fmt.Printf("event trend over the last %v day(s):\n%s\n", days, trendTable.Render().GetString())

	severityTable := cli.NewTable(cli.NewTableOpts{Headers: []string{"severity", "alerts"}})
	for _, count := range severity {
		if err := severityTable.NewRow(string(count.Severity), count.Count); err != nil {
			return err
		}
	}
	fmt.Printf("alerts by severity:\n%s\n", severityTable.Render().GetString())

	sourcesTable := cli.NewTable(cli.NewTableOpts{Headers: []string{"asset", "name", "events"}})
	for _, source := range sources {
		var assetId any
		if source.AssetId != nil {
			assetId = *source.AssetId
		}
		if err := sourcesTable.NewRow(assetId, source.AssetName, source.Count); err != nil {
			return err
		}
	}
	fmt.Printf("busiest assets:\n%s\n", sourcesTable.Render().GetString())
	return nil
}

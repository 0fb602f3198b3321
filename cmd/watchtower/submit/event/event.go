package event

import (
	"encoding/json"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/config"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/queue"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/server"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetNatsFlags().Append(cli.Flags{
	{
		Name:         "event-type",
		Short:        't',
		DefaultValue: "",
		Usage:        "specifies the type of the submitted event",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "severity",
		Short:        's',
		DefaultValue: string(gateway.SeverityLow),
		Usage:        "specifies the severity of the submitted event",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "message",
		Short:        'm',
		DefaultValue: "",
		Usage:        "specifies the human readable message of the submitted event",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "asset-id",
		DefaultValue: 0,
		Usage:        "identifies the asset the event originated from",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "raw-payload",
		DefaultValue: "",
		Usage:        "attaches the raw log document as a json string",
		Type:         cli.FlagTypeString,
	},
})

func init() {
	flags.AddToCommand(Command)
}

var Command = &cobra.Command{
	Use:     "event",
	Aliases: []string{"e"},
	Short:   "Submits an event into the intake queue",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		severity, err := gateway.ParseSeverity(viper.GetString("severity"))
		if err != nil {
			return fmt.Errorf("failed to parse severity: %w", err)
		}
		submission := server.EventSubmission{
			EventType: viper.GetString("event-type"),
			Severity:  string(severity),
			Message:   viper.GetString("message"),
		}
		if assetId := viper.GetInt64("asset-id"); assetId != 0 {
			submission.AssetId = &assetId
		}
		if rawPayload := viper.GetString("raw-payload"); rawPayload != "" {
			if !json.Valid([]byte(rawPayload)) {
				return fmt.Errorf("failed to parse raw payload: not a valid json document")
			}
			submission.RawPayload = json.RawMessage(rawPayload)
		}
		if err := submission.Validate(); err != nil {
			return fmt.Errorf("failed to validate submission: %w", err)
		}
		data, err := json.Marshal(submission)
		if err != nil {
			return fmt.Errorf("failed to serialise submission: %s", err)
		}

		natsInstance, err := queue.InitNats(queue.InitNatsOpts{
			Id:       "watchtower/submit",
			Addr:     viper.GetString(config.NatsAddr),
			Username: viper.GetString(config.NatsUsername),
			Password: viper.GetString(config.NatsPassword),
			NKey:     viper.GetString(config.NatsNkeyValue),
		})
		if err != nil {
			return fmt.Errorf("failed to initialise queue client: %w", err)
		}
		if err := natsInstance.Connect(); err != nil {
			return fmt.Errorf("failed to connect to queue: %w", err)
		}
		defer natsInstance.Close()

		output, err := natsInstance.Push(queue.PushOpts{
			Data: data,
			Queue: queue.QueueOpts{
				Stream:  server.EventIntakeStream,
				Subject: server.EventIntakeSubject,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to push submission: %w", err)
		}
		logrus.Debugf("pushed %v byte(s) to stream[%s]", output.MessageSizeBytes, server.EventIntakeStream)
		fmt.Println("event submitted")
		return nil
	},
}

package submit

import (
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/submit/event"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(event.Command)
}

var Command = &cobra.Command{
	Use:   "submit",
	Short: "Submits data into the intake pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

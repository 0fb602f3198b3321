package get

import (
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/get/summary"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(summary.Command)
}

var Command = &cobra.Command{
	Use:     "get",
	Aliases: []string{"g"},
	Short:   "Retrieves read-only views from the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

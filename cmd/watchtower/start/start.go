package start

import (
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/start/server"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(server.Command)
}

var Command = &cobra.Command{
	Use:     "start",
	Aliases: []string{"st"},
	Short:   "Starts one of watchtower's services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

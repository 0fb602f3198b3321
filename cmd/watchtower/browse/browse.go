package browse

import (
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/cobra"
)

func init() {
	for _, schema := range gateway.Schemas() {
		Command.AddCommand(getBrowseResourceCommand(schema))
	}
}

var Command = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"b"},
	Short:   "Pages through a resource interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func getBrowseResourceCommand(schema gateway.Schema) *cobra.Command {
	return &cobra.Command{
		Use:   schema.Name,
		Short: fmt.Sprintf("Pages through %s interactively", schema.Name),
		RunE: func(cmd *cobra.Command, args []string) error {
			binding, err := cli.GetResourceBinding(schema.Name)
			if err != nil {
				return err
			}
			return cli.Browse(cmd.Context(), binding)
		},
	}
}

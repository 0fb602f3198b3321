package remove

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/cobra"
)

func init() {
	for _, schema := range gateway.Schemas() {
		Command.AddCommand(getRemoveResourceCommand(schema))
	}
}

var Command = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "delete"},
	Short:   "Removes a resource entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func getRemoveResourceCommand(schema gateway.Schema) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <id>", schema.Name),
		Short: fmt.Sprintf("Removes one of %s by its id", schema.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse id[%s]: %s", args[0], err)
			}
			binding, err := cli.GetResourceBinding(schema.Name)
			if err != nil {
				return err
			}
			defer binding.Flush()
			if err := binding.Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, gateway.ErrorCancelled) {
					cli.PrintBoxedInfoMessage("no changes were made")
					return nil
				}
				cli.PrintBoxedErrorMessage(fmt.Sprintf("failed to remove %s[%v]: %s", schema.Name, id, err))
				return err
			}
			cli.PrintBoxedSuccessMessage(fmt.Sprintf("removed %s[%v]", schema.Name, id))
			return nil
		},
	}
}

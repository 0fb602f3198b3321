package create

import (
	"errors"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/cobra"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "set",
		DefaultValue: []string{},
		Usage:        "sets a field non-interactively using key=value notation, repeatable; skips the form entirely",
		Type:         cli.FlagTypeStringSlice,
	},
}

func init() {
	for _, schema := range gateway.Schemas() {
		Command.AddCommand(getCreateResourceCommand(schema))
	}
}

var Command = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "Creates a resource entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func getCreateResourceCommand(schema gateway.Schema) *cobra.Command {
	command := &cobra.Command{
		Use:   schema.Name,
		Short: fmt.Sprintf("Creates one of %s", schema.Name),
		PreRun: func(cmd *cobra.Command, args []string) {
			flags.BindViper(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			binding, err := cli.GetResourceBinding(schema.Name)
			if err != nil {
				return err
			}
			defer binding.Flush()
			values, isInteractive, err := cli.GetFieldValues(binding, nil)
			if err != nil {
				if errors.Is(err, cli.ErrorUserCancelled) {
					cli.PrintBoxedInfoMessage("no changes were made")
					return nil
				}
				return err
			}
			if err := binding.Create(cmd.Context(), values); err != nil {
				if errors.Is(err, gateway.ErrorCancelled) {
					cli.PrintBoxedInfoMessage("no changes were made")
					return nil
				}
				cli.PrintBoxedErrorMessage(fmt.Sprintf("failed to create %s: %s", schema.Name, err))
				return err
			}
			if !isInteractive {
				fmt.Printf("created one of %s\n", schema.Name)
				return nil
			}
			cli.PrintBoxedSuccessMessage(fmt.Sprintf("created one of %s", schema.Name))
			return nil
		},
	}
	flags.AddToCommand(command)
	return command
}

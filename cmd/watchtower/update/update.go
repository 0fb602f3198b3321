package update

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

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
		Command.AddCommand(getUpdateResourceCommand(schema))
	}
}

var Command = &cobra.Command{
	Use:     "update",
	Aliases: []string{"u"},
	Short:   "Updates a resource entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func getUpdateResourceCommand(schema gateway.Schema) *cobra.Command {
	command := &cobra.Command{
		Use:   fmt.Sprintf("%s <id>", schema.Name),
		Short: fmt.Sprintf("Updates one of %s by its id", schema.Name),
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			flags.BindViper(cmd)
		},
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
			if err := loadPageContaining(cmd.Context(), binding, id); err != nil {
				return err
			}
			seed, err := binding.CurrentValues(id)
			if err != nil {
				return err
			}
			values, isInteractive, err := cli.GetFieldValues(binding, seed)
			if err != nil {
				if errors.Is(err, cli.ErrorUserCancelled) {
					cli.PrintBoxedInfoMessage("no changes were made")
					return nil
				}
				return err
			}
			if err := binding.Update(cmd.Context(), id, values); err != nil {
				if errors.Is(err, gateway.ErrorCancelled) {
					cli.PrintBoxedInfoMessage("no changes were made")
					return nil
				}
				cli.PrintBoxedErrorMessage(fmt.Sprintf("failed to update %s[%v]: %s", schema.Name, id, err))
				return err
			}
			if !isInteractive {
				fmt.Printf("updated %s[%v]\n", schema.Name, id)
				return nil
			}
			cli.PrintBoxedSuccessMessage(fmt.Sprintf("updated %s[%v]", schema.Name, id))
			return nil
		},
	}
	flags.AddToCommand(command)
	return command
}

// loadPageContaining advances the cursor until the target id is in the
// window; mutations only touch entries on the loaded page
func loadPageContaining(ctx context.Context, binding cli.ResourceBinding, id int64) error {
	if err := binding.LoadPage(ctx, 0); err != nil {
		return fmt.Errorf("failed to load %s: %w", binding.Schema().Name, err)
	}
	for {
		if slices.Contains(binding.Ids(), id) {
			return nil
		}
		if !binding.HasMore() {
			return fmt.Errorf("failed to find %s[%v]", binding.Schema().Name, id)
		}
		if err := binding.NextPage(ctx); err != nil {
			return fmt.Errorf("failed to load %s: %w", binding.Schema().Name, err)
		}
	}
}

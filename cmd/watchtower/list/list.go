package list

import (
	"encoding/json"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = cli.Flags{
	{
		Name:         "skip",
		Short:        's',
		DefaultValue: 0,
		Usage:        "specifies the number of entries to skip before the page starts",
		Type:         cli.FlagTypeInteger,
	},
}

func init() {
	for _, schema := range gateway.Schemas() {
		Command.AddCommand(getListResourceCommand(schema))
	}
}

var Command = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Lists one page of a resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func getListResourceCommand(schema gateway.Schema) *cobra.Command {
	command := &cobra.Command{
		Use:   schema.Name,
		Short: fmt.Sprintf("Lists one page of %s", schema.Name),
		PreRun: func(cmd *cobra.Command, args []string) {
			flags.BindViper(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			binding, err := cli.GetResourceBinding(schema.Name)
			if err != nil {
				return err
			}
			if err := binding.LoadPage(cmd.Context(), viper.GetInt("skip")); err != nil {
				return fmt.Errorf("failed to load %s: %w", schema.Name, err)
			}
			switch viper.GetString("output") {
			case "json":
				output, err := json.MarshalIndent(binding.Items(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to serialise %s: %w", schema.Name, err)
				}
				fmt.Println(string(output))
			default:
				table := cli.NewTable(cli.NewTableOpts{
					Headers:     binding.Headers(),
					IsFullWidth: true,
				})
				for _, row := range binding.Rows() {
					if err := table.NewRow(row...); err != nil {
						return fmt.Errorf("failed to render %s: %w", schema.Name, err)
					}
				}
				fmt.Println(table.Render().GetString())
				fmt.Printf("showing entries from offset[%v], more available: %v\n", binding.Offset(), binding.HasMore())
			}
			return nil
		},
	}
	flags.AddToCommand(command)
	return command
}

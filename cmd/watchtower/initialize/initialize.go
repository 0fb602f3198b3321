package initialize

import (
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:     "initialize",
	Aliases: []string{"init"},
	Short:   "Writes a starter global configuration file",
	Long:    "Writes a starter global configuration file to the path given by --config, refusing to overwrite an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := common.ToAbsolutePath(viper.GetString("config"))
		if err != nil {
			return fmt.Errorf("failed to resolve configuration path: %w", err)
		}
		gatewayUrl := viper.GetString("gateway-url")
		if gatewayUrl == "" {
			gatewayUrl = cli.DefaultGatewayUrl
		}
		configuration := config.NewGlobal(gatewayUrl, viper.GetInt64("actor-id"))
		if err := config.WriteGlobal(configPath, configuration); err != nil {
			return err
		}
		cli.PrintBoxedSuccessMessage(fmt.Sprintf("configuration written to path[%s]", configPath))
		return nil
	},
}

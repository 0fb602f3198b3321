package watchtower

import (
	"fmt"
	"os"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/browse"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/create"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/get"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/initialize"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/list"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/remove"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/start"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/submit"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower/update"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var availableOutputs = []string{
	"text",
	"json",
}

var availableLogLevels = []string{
	string(common.LogLevelTrace),
	string(common.LogLevelDebug),
	string(common.LogLevelInfo),
	string(common.LogLevelWarn),
	string(common.LogLevelError),
}

var persistentFlags cli.Flags = cli.Flags{
	{
		Name:         "config",
		Short:        'C',
		DefaultValue: "~/.watchtower/config",
		Usage:        "Defines the location of the global configuration used",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "log-level",
		Short:        'l',
		DefaultValue: "info",
		Usage:        fmt.Sprintf("Sets the log level (one of [%s])", strings.Join(availableLogLevels, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "output",
		Short:        'o',
		DefaultValue: "text",
		Usage:        fmt.Sprintf("Sets the output format where applicable (one of [%s])", strings.Join(availableOutputs, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "gateway-url",
		Short:        'g',
		DefaultValue: "",
		Usage:        "Overrides the gateway url from the global configuration",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "actor-id",
		Short:        'a',
		DefaultValue: 0,
		Usage:        "Overrides the operator id recorded on audit entries",
		Type:         cli.FlagTypeInteger,
	},
}

func init() {
	Command.AddCommand(browse.Command)
	Command.AddCommand(create.Command)
	Command.AddCommand(get.Command)
	Command.AddCommand(initialize.Command)
	Command.AddCommand(list.Command)
	Command.AddCommand(remove.Command)
	Command.AddCommand(start.Command)
	Command.AddCommand(submit.Command)
	Command.AddCommand(update.Command)
	Command.SilenceErrors = true
	Command.SilenceUsage = true

	persistentFlags.AddToCommand(Command, true)

	logrus.SetOutput(os.Stderr)
	cobra.OnInitialize(func() {
		persistentFlags.BindViper(Command, true)
		cli.InitLogging(viper.GetString("log-level"))
		configPath := viper.GetString("config")
		logrus.Debugf("using configuration at path[%s]", configPath)
		config.LoadGlobal(configPath)
	})

	cli.InitConfig()
}

var Command = &cobra.Command{
	Use:     "watchtower",
	Short:   "Security operations dashboard for keeping watch over your estate",
	Version: config.GetVersion(),
	Long:    "Security operations dashboard for keeping watch over your estate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

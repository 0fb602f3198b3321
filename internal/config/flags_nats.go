package config

import "github.com/Shiwantha-I-Rodrigo/watch-tower/internal/cli"

const (
	NatsAddr      = "nats-addr"
	NatsUsername  = "nats-username"
	NatsPassword  = "nats-password"
	NatsNkeyValue = "nats-nkey-value"
)

func GetNatsFlags() cli.Flags {
	return cli.Flags{
		{
			Name:         NatsAddr,
			DefaultValue: "localhost:4222",
			Usage:        "Specifies the hostname (including port) of the NATS server",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsUsername,
			DefaultValue: "watchtower",
			Usage:        "Specifies the username used to login to NATS",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsPassword,
			DefaultValue: "password",
			Usage:        "Specifies the password used to login to NATS",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsNkeyValue,
			DefaultValue: "",
			Usage:        "Specifies the nkey used to login to NATS",
			Type:         cli.FlagTypeString,
		},
	}
}

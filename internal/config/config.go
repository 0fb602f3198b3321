package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var Global global

type global struct {
	// GatewayUrl is the base url of the watchtower gateway that the
	// client commands talk to
	GatewayUrl string `json:"gatewayUrl" yaml:"gatewayUrl"`

	// ActorId identifies the operator on audit records written as a
	// side effect of mutations
	ActorId int64 `json:"actorId" yaml:"actorId"`

	SourcePath *string `json:"sourcePath" yaml:"sourcePath"`
}

func (g *global) IsGlobalConfigExists() bool {
	return g.SourcePath != nil
}

func LoadGlobal(from string) error {
	logrus.Debugf("loading global configuration from path[%s]...", from)

	if expanded, err := common.ToAbsolutePath(from); err == nil {
		from = expanded
	}

	isGlobalConfigLoaded := true
	fi, err := os.Stat(from)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("config file not found at path[%s], defaults will be used", from)
		isGlobalConfigLoaded = false
	} else if err == nil && fi.IsDir() {
		logrus.Warnf("config file path[%s] led to a directory, defaults will be used", from)
		isGlobalConfigLoaded = false
	}
	if isGlobalConfigLoaded {
		viper.SetConfigFile(from)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file: %s", err)
		}
	}
	if err := viper.Unmarshal(&Global); err != nil {
		return fmt.Errorf("failed to parse configuration file: %s", err)
	}
	if isGlobalConfigLoaded {
		Global.SourcePath = &from
	}

	// the configured values become the defaults behind the command
	// line flags of the same intent
	if Global.GatewayUrl != "" {
		viper.SetDefault("gateway-url", Global.GatewayUrl)
	}
	if Global.ActorId != 0 {
		viper.SetDefault("actor-id", Global.ActorId)
	}

	return nil
}

// WriteGlobal writes a starter configuration file to the provided path,
// refusing to overwrite an existing file
func WriteGlobal(to string, configuration global) error {
	if _, err := os.Stat(to); err == nil {
		return fmt.Errorf("failed to write configuration: path[%s] already exists", to)
	}
	configuration.SourcePath = nil
	data, err := yaml.Marshal(configuration)
	if err != nil {
		return fmt.Errorf("failed to serialise configuration: %s", err)
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %s", err)
	}
	if err := os.WriteFile(to, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %s", err)
	}
	return nil
}

// NewGlobal returns the starter configuration written by the init
// command
func NewGlobal(gatewayUrl string, actorId int64) global {
	return global{
		GatewayUrl: gatewayUrl,
		ActorId:    actorId,
	}
}

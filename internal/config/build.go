package config

import (
	"fmt"
)

var (
	DistributionBranch  = "dev"
	DistributionEnv     = "local"
	DistributionVersion = "0.0.0"
)

func GetVersion() string {
	return fmt.Sprintf("%s-%s-%s", DistributionVersion, DistributionBranch, DistributionEnv)
}

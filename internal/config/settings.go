package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. IDLE_BALANCE_SCENARIO.
const EnvPrefix = "IDLE_BALANCE"

// Setting keys shared by the drivers.
const (
	KeyConfigDir = "config-dir"
	KeyScenario  = "scenario"
	KeyLogLevel  = "log-level"
)

// AddCommonFlags registers the flags every driver accepts.
func AddCommonFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfigDir, "configs", "directory holding tuning/default.yaml and tuning/scenarios/")
	fs.String(KeyScenario, "", "scenario overlay to apply on top of the default tuning")
	fs.String(KeyLogLevel, "info", "log level: error, warn, info, debug, trace")
}

// BindSettings returns a viper instance over fs. Precedence is flag, then
// IDLE_BALANCE_* environment variable, then flag default. Dashes in keys map
// to underscores in variable names.
func BindSettings(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindSettingsPrecedence(t *testing.T) {
	t.Setenv("IDLE_BALANCE_SCENARIO", "hard")
	t.Setenv("IDLE_BALANCE_LOG_LEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level=trace"}))

	v, err := BindSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, "configs", v.GetString(KeyConfigDir), "flag default")
	assert.Equal(t, "hard", v.GetString(KeyScenario), "env beats default")
	assert.Equal(t, "trace", v.GetString(KeyLogLevel), "explicit flag beats env")
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/IljaManakov/cryostasis/internal/config"
)

func TestConfigDefaults(t *testing.T) {
	stdout, _, err := execute(NewConfigCommand(goldenRootOptions("text")))
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	def := config.Default()
	assert.Equal(t, def.WarnUnsupported, got.WarnUnsupported)
	assert.Equal(t, def.LogLevel, got.LogLevel)
	assert.Equal(t, def.DefaultExclusions.Types, got.DefaultExclusions.Types)
	assert.Equal(t, def.Metrics, got.Metrics)
	assert.Contains(t, stdout, "warn_unsupported: true")
}

func TestConfigFromFile(t *testing.T) {
	cfgPath := writeDoc(t, "cryo.cue", `
warn_unsupported: false
default_exclusions: attrs: ["cache", "lock"]
metrics: {enabled: true, namespace: "app"}
`)

	opts := goldenRootOptions("json")
	opts.ConfigPath = cfgPath
	stdout, _, err := execute(NewConfigCommand(opts))
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   config.Config `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.WarnUnsupported)
	assert.Equal(t, []string{"cache", "lock"}, resp.Data.DefaultExclusions.Attrs)
	assert.Equal(t, []string{"Enum"}, resp.Data.DefaultExclusions.Types, "unset fields keep their defaults")
	assert.True(t, resp.Data.Metrics.Enabled)
	assert.Equal(t, "app", resp.Data.Metrics.Namespace)
}

func TestConfigMetricsFileEnablesMetrics(t *testing.T) {
	opts := goldenRootOptions("json")
	opts.MetricsFile = writeDoc(t, "cryo.prom", "")
	stdout, _, err := execute(NewConfigCommand(opts))
	require.NoError(t, err)

	var resp struct {
		Data config.Config `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.Metrics.Enabled)
}

func TestConfigRejectsArgs(t *testing.T) {
	_, _, err := execute(NewConfigCommand(goldenRootOptions("text")), "extra")
	require.Error(t, err)
}

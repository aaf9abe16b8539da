package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IljaManakov/cryostasis/internal/object"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.WarnUnsupported)
	assert.False(t, cfg.Metrics.Enabled)

	excl, err := cfg.Exclusions()
	require.NoError(t, err)
	assert.True(t, excl.ContainsInstance(object.NewEnum("ConfigColor", "RED").Member("RED")))
	assert.False(t, excl.ContainsInstance(object.NewList()))
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "cryo.yaml", `
log_level: debug
default_exclusions:
  attrs: [cache, _lock]
  items: [secret]
  indexes: [0]
  types: [Enum, Func]
metrics:
  enabled: true
  namespace: cryo
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.WarnUnsupported, "unset fields keep their defaults")
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "cryo", cfg.Metrics.Namespace)

	excl, err := cfg.Exclusions()
	require.NoError(t, err)
	assert.True(t, excl.ContainsAttr("_lock"))
	assert.True(t, excl.ContainsItem(object.Str("secret")))
	assert.True(t, excl.ContainsItem(object.Int(0)))
	assert.True(t, excl.ContainsInstance(object.NewFunc("f", nil)))
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "cryo.json", `{"warn_unsupported": false, "log_level": "error"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.WarnUnsupported)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
	assert.Equal(t, []string{"Enum"}, cfg.DefaultExclusions.Types)
}

func TestLoadCUE(t *testing.T) {
	path := writeConfig(t, "cryo.cue", `
warn_unsupported: false
log_level:        "warn"
default_exclusions: {
	bases: ["Record"]
	attrs: [ for n in ["a", "b"] {n + "_cache"} ]
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.WarnUnsupported)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, []string{"a_cache", "b_cache"}, cfg.DefaultExclusions.Attrs)

	excl, err := cfg.Exclusions()
	require.NoError(t, err)
	assert.True(t, excl.ContainsSubclass(object.NewShape("ConfigPoint", object.RecordShape)))
}

func TestLoadCUEInvalid(t *testing.T) {
	path := writeConfig(t, "bad.cue", `log_level: string`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not concrete")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.DefaultExclusions.Types = []string{"NoSuchShape"}
	cfg.DefaultExclusions.Attrs = []string{""}
	cfg.Metrics.Enabled = true

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "LogLevel")
	assert.Contains(t, msg, "Namespace")
	assert.Contains(t, msg, "Attrs[0]")
	assert.Contains(t, msg, `unknown shape "NoSuchShape"`)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "cryo.toml", "x = 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")

	_, err = Load(writeConfig(t, "cryo.yaml", "log_level: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "cryo.yaml", "log_level: loud"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestExclusionsUnknownShape(t *testing.T) {
	cfg := Default()
	cfg.DefaultExclusions.Bases = []string{"Nope"}

	_, err := cfg.Exclusions()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HRMONTHLY_LOOKUPS_PATH", "")
	t.Setenv("HRMONTHLY_BASE_PATH", "")

	cfg, info, err := LoadConfigWithInfo(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.Found)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	t.Setenv("HRMONTHLY_LOOKUPS_PATH", "")
	t.Setenv("HRMONTHLY_BASE_PATH", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9000

[files]
base_path = "/srv/hr"
header_row = 1

[business]
default_month = 3
apply_mappings = false

[log]
level = "debug"
format = "json"
`), 0644))

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/hr", cfg.Files.BasePath)
	assert.Equal(t, 1, cfg.Files.HeaderRow)
	assert.Equal(t, 3, cfg.Business.DefaultMonth)
	assert.False(t, cfg.Business.ApplyMappings)
	assert.Equal(t, "json", cfg.Log.Format)
	// 未出现的键保持默认值
	assert.Equal(t, DefaultConfig().Files.SourceA, cfg.Files.SourceA)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HRMONTHLY_LOOKUPS_PATH", "/etc/hr/lookups.yaml")
	t.Setenv("HRMONTHLY_BASE_PATH", "/data/in")

	cfg, _, err := LoadConfigWithInfo(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/etc/hr/lookups.yaml", cfg.Lookups.Path)
	assert.Equal(t, "/data/in", cfg.Files.BasePath)
}

func TestLoadConfig_InvalidMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[business]\ndefault_month = 13\n"), 0644))

	_, _, err := LoadConfigWithInfo(path)
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0644))

	_, _, err := LoadConfigWithInfo(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("HRMONTHLY_LOOKUPS_PATH", "")
	t.Setenv("HRMONTHLY_BASE_PATH", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Business.DefaultMonth = 7
	require.NoError(t, SaveConfig(cfg, path))

	got, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, cfg, got)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "花名册A_3月.xlsx", FileName(DefaultConfig().Files.SourceA, 3))
	assert.Equal(t, "fixed.xlsx", FileName("fixed.xlsx", 3))
}

func TestGetDataPath_Absolute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = "/var/lib/hrmonthly"
	assert.Equal(t, filepath.Join("/var/lib/hrmonthly", "output", "x.xlsx"), GetDataPath(cfg, "output", "x.xlsx"))
}

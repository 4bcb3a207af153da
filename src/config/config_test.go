package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigParsesFields(t *testing.T) {
	path := writeConfig(t, `{
		"data_dir": "/var/lib/aqi",
		"data_file": "history.xlsx",
		"sheet_name": "Export",
		"http_addr": ":9090",
		"log_name": "aqi.log",
		"log_max_size": "5 * 1024 * 1024",
		"refresh_interval": "1m",
		"email": {
			"enabled": true,
			"server": "imap.example.com:993",
			"username": "ingest",
			"password": "secret",
			"target_subject": "Air Quality",
			"check_interval": "30m"
		},
		"webhook": {
			"enabled": true,
			"url": "https://hooks.example.com/aqi"
		}
	}`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/aqi", cfg.DataDir)
	assert.Equal(t, "Export", cfg.SheetName)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, time.Minute, time.Duration(cfg.RefreshInterval))
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, "imap.example.com:993", cfg.Email.Server)
	assert.Equal(t, 30*time.Minute, time.Duration(cfg.Email.CheckInterval))
	assert.True(t, cfg.Webhook.Enabled)
	assert.Equal(t, filepath.Join("/var/lib/aqi", "history.xlsx"), cfg.DataPath())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "air_quality_history.xlsx", cfg.DataFile)
	assert.Equal(t, "", cfg.SheetName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "app.log", cfg.LogName)
	assert.Equal(t, "10 * 1024 * 1024", cfg.LogMaxSize)
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.RefreshInterval))
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.Email.CheckInterval))
	assert.False(t, cfg.Email.Enabled)
	assert.False(t, cfg.Webhook.Enabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadConfigBadJSON(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `{"data_dir": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDurationBadValue(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `{"refresh_interval": "soon"}`))
	require.Error(t, err)
}

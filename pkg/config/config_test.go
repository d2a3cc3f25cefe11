package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"timetrack/pkg/config"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "settings.yaml"))
	assert.Nil(err)

	// defaults apply
	assert.NotEmpty(cfg.Database)
	assert.NotEmpty(cfg.LogFile)
	assert.Equal("info", cfg.LogLevel)
	assert.True(cfg.Notifications)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "database: /tmp/tt.sqlite\nlog_file: /tmp/tt.log\nlog_level: debug\nnotifications: false\n"

	err := os.WriteFile(path, []byte(raw), 0o644)
	assert.Nil(err)

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal("/tmp/tt.sqlite", cfg.Database)
	assert.Equal("/tmp/tt.log", cfg.LogFile)
	assert.Equal("debug", cfg.LogLevel)
	assert.False(cfg.Notifications)
}

func TestLoadBadYaml(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")

	err := os.WriteFile(path, []byte("database: [unclosed"), 0o644)
	assert.Nil(err)

	_, err = config.Load(path)
	assert.NotNil(err)
}

func TestEnsureDirs(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	base := t.TempDir()
	cfg := config.Config{
		Database: filepath.Join(base, "data", "tt.sqlite"),
		LogFile:  filepath.Join(base, "logs", "tt.log"),
	}

	err := config.EnsureDirs(cfg)
	assert.Nil(err)

	_, err = os.Stat(filepath.Join(base, "data"))
	assert.Nil(err)

	_, err = os.Stat(filepath.Join(base, "logs"))
	assert.Nil(err)
}

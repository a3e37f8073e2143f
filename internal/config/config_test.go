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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9000"
  jwtsigningkey: secret
storage:
  driver: memory
lottery:
  scanworkers: 8
  synctimeout: 30s
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, "secret", conf.API.JWTSigningKey)
	assert.Equal(t, StorageDriverMemory, conf.Storage.Driver)
	assert.Equal(t, 8, conf.Lottery.ScanWorkers)
	assert.Equal(t, 30*time.Second, conf.Lottery.SyncTimeout)
	assert.Equal(t, "lottery:sweep", conf.Lottery.LockKey)
	assert.Equal(t, uint64(3), conf.Lottery.FinalizeRetries)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
api:
  jwtsigningkey: secret
storage:
  driver: memory
`)
	t.Setenv("LOTTERY_API_PORT", "7000")
	t.Setenv("LOTTERY_LOTTERY_SCANWORKERS", "2")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", conf.API.Port)
	assert.Equal(t, 2, conf.Lottery.ScanWorkers)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LOTTERY_API_JWTSIGNINGKEY", "secret")

	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, conf.Storage.Driver)
	assert.Equal(t, "8080", conf.API.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "api:\n  jwtsigningkey: k\nstorage:\n  driver: mongo\n"},
		{"missing signing key", "storage:\n  driver: memory\n"},
		{"no workers", "api:\n  jwtsigningkey: k\nlottery:\n  scanworkers: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

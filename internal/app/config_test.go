package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/fast-vault-service/internal/service"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := writeConfig(t, "server:\n  http-port: :9100\n")

	cfg, realpath, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, p, realpath)
	assert.Equal(t, ":9100", cfg.Server.HttpPort)
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, storage.LOCAL, cfg.Storage.Type)
	assert.Equal(t, "/uploads", cfg.Storage.URLPrefix)
	assert.Equal(t, "owner", cfg.Security.DeletePolicy)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Log.Production)
	assert.True(t, cfg.Tracer.Enabled)
	assert.Equal(t, 60*time.Second, cfg.GetContextTimeout())
	assert.Equal(t, int64(32<<20), cfg.App.MaxMultipartMemory)
}

func TestLoadConfig_ExplicitFalseIsKept(t *testing.T) {
	p := writeConfig(t, "log:\n  production: false\ntracer:\n  enabled: false\ndatabase:\n  auto-migrate: false\n")

	cfg, _, err := LoadConfig(p)
	require.NoError(t, err)

	assert.False(t, cfg.Log.Production)
	assert.False(t, cfg.Tracer.Enabled)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"delete policy": "security:\n  delete-policy: anyone\n",
		"storage type":  "storage:\n  type: ftp\n",
		"log level":     "log:\n  level: loud\n",
		"yaml":          "server: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_BundledDefault(t *testing.T) {
	cfg, _, err := LoadConfig("../../config/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "vault_", cfg.Database.TablePrefix)
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.PrivateHttpListen)
	assert.Equal(t, service.DeletePolicyOwner, cfg.GetServiceConfig().Security.DeletePolicy)
}

func TestAppConfig_Durations(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Security.TokenExpiry = "7d"
	assert.Equal(t, 7*24*time.Hour, cfg.GetTokenExpiry())

	cfg.Security.TokenExpiry = "soon"
	assert.Equal(t, 365*24*time.Hour, cfg.GetTokenExpiry())

	cfg.Database.ConnMaxLifetime = "30m"
	cfg.Database.ConnMaxIdleTime = "bad"
	dbCfg := cfg.GetDatabaseConfig()
	assert.Equal(t, 30*time.Minute, dbCfg.ConnMaxLifetime)
	assert.Zero(t, dbCfg.ConnMaxIdleTime)
}

func TestAppConfig_ServiceConfig(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Security.DeletePolicy = "open"
	assert.Equal(t, service.DeletePolicyOpen, cfg.GetServiceConfig().Security.DeletePolicy)
}

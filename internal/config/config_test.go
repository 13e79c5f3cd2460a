package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "postgres://admin@localhost:5432/statements"
	cfg.Import.Spreadsheets = false

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(10), cfg.Server.MaxUploadMB)
	assert.Empty(t, cfg.Server.UploadDir)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Import.Spreadsheets)
	assert.Equal(t, "import", cfg.Import.Dir)
	assert.Equal(t, "logs/import-log.csv", cfg.Import.History)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("database:\n  dsn: postgres://x\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", cfg.Database.DSN)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Import.Spreadsheets)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv(EnvDSN, "postgres://env")
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDSN:      "postgres://override",
		EnvAddr:     ":9090",
		EnvLogLevel: "",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "postgres://override", cfg.Database.DSN)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDSN)

	cfg.Database.DSN = "postgres://x"
	assert.NoError(t, cfg.Validate())

	cfg.Server.MaxUploadMB = 0
	assert.Error(t, cfg.Validate())
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "max_upload_mb: 10")
	assert.Contains(t, contents, "spreadsheets: true")
	assert.Contains(t, contents, "auto_migrate: true")
	assert.NotContains(t, contents, "upload_dir")
}

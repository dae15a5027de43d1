package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func load(t *testing.T, global, local string, opts ...Option) *Config {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
	cfg, err := New(append([]Option{WithDirs(global, local), WithoutEnvFile()}, opts...)...)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := load(t, t.TempDir(), t.TempDir())
	schema := cfg.Schema()

	assert.Equal(t, "INFO", schema.Log.LogLevel)
	assert.Empty(t, schema.Log.LogFile)
	assert.Equal(t, "fingerstring", schema.Server.Name)
	assert.Equal(t, 50, schema.Store.PageSize)
	assert.Equal(t, "fingerstring.sqlite", filepath.Base(schema.Database.Path))
	assert.Equal(t, "fingerstring", filepath.Base(filepath.Dir(schema.Database.Path)))
	assert.Equal(t, "default", cfg.Source("log.logLevel"))
}

func TestLayering(t *testing.T) {
	global, local := t.TempDir(), t.TempDir()
	writeFile(t, global, "base.fingerstring.yaml", "log:\n  logLevel: DEBUG\nstore:\n  pageSize: 10\n")
	writeFile(t, local, "project.fingerstring.json", `{"store": {"pageSize": 20}, "database": {"path": "/tmp/x.sqlite"}}`)
	writeFile(t, local, "ignored.yaml", "store:\n  pageSize: 99\n")

	cfg := load(t, global, local)
	schema := cfg.Schema()

	assert.Equal(t, "DEBUG", schema.Log.LogLevel)
	assert.Equal(t, 20, schema.Store.PageSize)
	assert.Equal(t, "/tmp/x.sqlite", schema.Database.Path)
	assert.Equal(t, "fingerstring", schema.Server.Name, "untouched keys keep their defaults")
	assert.Equal(t, filepath.Join(local, "project.fingerstring.json"), cfg.Source("store.pagesize"))
}

func TestEnvAndOverrides(t *testing.T) {
	global := t.TempDir()
	writeFile(t, global, "a.fingerstring.yaml", "store:\n  pageSize: 10\nlog:\n  logLevel: DEBUG\n")
	t.Setenv("FINGERSTRING_STORE_PAGESIZE", "30")
	t.Setenv("FINGERSTRING_LOG_LOGLEVEL", "WARN")

	level := "ERROR"
	db := "/var/tmp/override.sqlite"
	cfg := load(t, global, t.TempDir(), WithOverrides(&RuntimeOverrides{LogLevel: &level, DBPath: &db}))
	schema := cfg.Schema()

	assert.Equal(t, 30, schema.Store.PageSize)
	assert.Equal(t, "ERROR", schema.Log.LogLevel)
	assert.Equal(t, db, schema.Database.Path)
	assert.Equal(t, "FINGERSTRING_STORE_PAGESIZE environment variable", cfg.Source("store.pagesize"))
	assert.Equal(t, "command line flag", cfg.Source("log.loglevel"))
}

func TestValidation(t *testing.T) {
	local := t.TempDir()
	writeFile(t, local, "bad.fingerstring.yaml", "log:\n  logLevel: LOUD\n")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	_, err := New(WithDirs(t.TempDir(), local), WithoutEnvFile())
	assert.ErrorContains(t, err, "config validation error")
}

func TestUnknownKeys(t *testing.T) {
	local := t.TempDir()
	writeFile(t, local, "x.fingerstring.yaml", "store:\n  pageSize: 5\n  colour: red\n")

	cfg := load(t, t.TempDir(), local)
	unknown := cfg.UnknownKeys()
	require.Len(t, unknown, 1)
	assert.Contains(t, unknown[0], "store.colour")
}

func TestKnownKeys(t *testing.T) {
	known := GetKnownKeys()
	for _, key := range []string{"database.path", "log.loglevel", "log.logfile", "server.name", "server.version", "store.pagesize"} {
		assert.True(t, IsKnownKey(known, key), key)
	}
	assert.True(t, IsKnownKey(known, "Store.PageSize"))
	assert.False(t, IsKnownKey(known, "models"))
}

func TestPrint(t *testing.T) {
	cfg := load(t, t.TempDir(), t.TempDir())

	var plain bytes.Buffer
	require.NoError(t, cfg.Print(&plain, false))
	assert.Contains(t, plain.String(), "logLevel: INFO")
	assert.Contains(t, plain.String(), "pageSize: 50")
	assert.NotContains(t, plain.String(), "#")

	var annotated bytes.Buffer
	require.NoError(t, cfg.Print(&annotated, true))
	assert.Contains(t, annotated.String(), "logLevel: INFO # default")
}

func TestGenerateJSONSchema(t *testing.T) {
	schema, err := GenerateJSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "FingerString Configuration Schema", schema.Title)
}

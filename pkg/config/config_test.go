package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Provide a path that definitely doesn't exist
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", config.Server.Addr)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Equal(t, "vidsum-storage.json", config.Storage.Path)
	assert.Equal(t, "gemini", config.Gateway.Provider)
	assert.Equal(t, 90, config.Gateway.TimeoutSeconds)
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.Logging.Development)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	content := []byte(`
server:
  addr: ":8080"
storage:
  backend: sqlite
  path: /tmp/vidsum.db
  prefix: alice
gateway:
  provider: openai
  model: gpt-4o-mini
  timeout_seconds: 30
logging:
  level: debug
  development: true
`)
	tmpfile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name()) // clean up

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, "sqlite", config.Storage.Backend)
	assert.Equal(t, "/tmp/vidsum.db", config.Storage.Path)
	assert.Equal(t, "alice", config.Storage.Prefix)
	assert.Equal(t, "openai", config.Gateway.Provider)
	assert.Equal(t, "gpt-4o-mini", config.Gateway.Model)
	assert.Equal(t, 30, config.Gateway.TimeoutSeconds)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.Development)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	content := []byte(`
gateway:
  provider: anthropic
`)
	tmpfile, err := os.CreateTemp("", "config_partial_*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	config, err := LoadConfig(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "anthropic", config.Gateway.Provider)
	assert.Equal(t, 90, config.Gateway.TimeoutSeconds)
	assert.Equal(t, "file", config.Storage.Backend)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	// Create a temporary file with invalid YAML
	content := []byte(`
gateway:
  timeout_seconds: "not a number"
  broken_yaml: [ unclosed bracket
`)
	tmpfile, err := os.CreateTemp("", "config_invalid_*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(tmpfile.Name())

	// Should return an error
	assert.Error(t, err)
	assert.Nil(t, config)
}

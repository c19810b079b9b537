package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGlobalFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("COINSIGHT_FLAG_CHECK=loaded\n"), 0o600))

	oldConfig := configFile
	configFile = path
	defer func() {
		configFile = oldConfig
		os.Unsetenv("COINSIGHT_FLAG_CHECK")
	}()

	require.NoError(t, loadGlobalFlags(rootCmd, nil))
	assert.Equal(t, "loaded", os.Getenv("COINSIGHT_FLAG_CHECK"))
}

func TestLoadGlobalFlags_MissingConfigFile(t *testing.T) {
	oldConfig := configFile
	configFile = filepath.Join(t.TempDir(), "does-not-exist.env")
	defer func() { configFile = oldConfig }()

	err := loadGlobalFlags(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config file")
}

func TestLoadGlobalFlags_Verbose(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")

	oldVerbose := verbose
	verbose = true
	defer func() { verbose = oldVerbose }()

	require.NoError(t, loadGlobalFlags(rootCmd, nil))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}

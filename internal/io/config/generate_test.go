package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path, err := DefaultConfigPath()
	require.NoError(t, err)

	expected := filepath.Join(tempHome, ".config", "climbex", "climbex.yaml")
	assert.Equal(t, expected, path)
	assert.True(t, filepath.IsAbs(path))
}

func TestGenerateDefaultConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	t.Run("creates documented config file", func(t *testing.T) {
		path, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t,
			strings.HasPrefix(string(content), "# climbex configuration file"))
		assert.Contains(t, string(content), "api.openbeta.io/graphql")

		// generated file must load back cleanly
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 500, cfg.API.PageSize)
	})

	t.Run("does not overwrite existing file", func(t *testing.T) {
		path, err := DefaultConfigPath()
		require.NoError(t, err)
		require.NoError(t,
			os.WriteFile(path, []byte("existing config"), 0o644))

		_, err = GenerateDefaultConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing config", string(content))
	})
}

func TestConfigFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	exists, err := ConfigFileExists()
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = GenerateDefaultConfig()
	require.NoError(t, err)

	exists, err = ConfigFileExists()
	require.NoError(t, err)
	assert.True(t, exists)
}

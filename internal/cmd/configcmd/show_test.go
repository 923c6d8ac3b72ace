package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/bbcode-cli/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		MediaURL:     "https://cdn.example.com",
		ContentURL:   "https://api.example.com",
		ContentToken: "abcd-secret-wxyz",
		MaxDepth:     32,
		Namespaces:   []string{"site", "user"},
	}
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))

	s := out.String()
	assert.Contains(t, s, "https://cdn.example.com  (source: config)")
	assert.Contains(t, s, "abcd********wxyz")
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "32  (source: config)")
	assert.Contains(t, s, "site,user")
	assert.Contains(t, s, "Config file: "+configPath)
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{MediaURL: "https://file.example.com"}).Save(configPath))

	t.Setenv("BBC_MEDIA_URL", "https://env.example.com")

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))
	assert.Contains(t, out.String(), "https://env.example.com  (source: BBC_MEDIA_URL)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	require.NoError(t, runShow(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "(file not found)")
}

func TestRunShow_MalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("media_url: [unclosed"), 0600))

	var out bytes.Buffer
	err := runShow(configPath, true, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "https://x", maskSecret("Content URL", "https://x"))
	assert.Equal(t, "*****", maskSecret("Content Token", "short"))
	assert.Equal(t, "abcd****wxyz", maskSecret("Content Token", "abcd1234wxyz"))
}

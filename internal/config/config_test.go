package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "full config",
			config: Config{
				MediaURL:     "https://cdn.example.com/media/",
				ContentURL:   "https://content.example.com/api",
				ContentToken: "token123",
				CodeStyle:    "monokai",
				MaxDepth:     32,
				OutputFormat: "json",
			},
			wantErr: false,
		},
		{
			name:    "relative media url",
			config:  Config{MediaURL: "/media"},
			wantErr: false,
		},
		{
			name:    "content url without host",
			config:  Config{ContentURL: "content.example.com"},
			wantErr: true,
			errMsg:  "not a valid URL",
		},
		{
			name:    "content url scheme",
			config:  Config{ContentURL: "ftp://content.example.com"},
			wantErr: true,
			errMsg:  "must use http or https",
		},
		{
			name:    "negative depth",
			config:  Config{MaxDepth: -1},
			wantErr: true,
			errMsg:  "max_depth",
		},
		{
			name:    "depth too large",
			config:  Config{MaxDepth: MaxDepthLimit + 1},
			wantErr: true,
			errMsg:  "max_depth",
		},
		{
			name:    "output format",
			config:  Config{OutputFormat: "xml"},
			wantErr: true,
			errMsg:  "output_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("BBC_MEDIA_URL", "/media")
		t.Setenv("BBC_CONTENT_URL", "https://env.example.com")
		t.Setenv("BBC_CONTENT_TOKEN", "env-token")
		t.Setenv("BBC_CODE_STYLE", "dracula")
		t.Setenv("BBC_MAX_DEPTH", "12")
		t.Setenv("BBC_NAMESPACES", "site, user,,")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "/media", cfg.MediaURL)
		assert.Equal(t, "https://env.example.com", cfg.ContentURL)
		assert.Equal(t, "env-token", cfg.ContentToken)
		assert.Equal(t, "dracula", cfg.CodeStyle)
		assert.Equal(t, 12, cfg.MaxDepth)
		assert.Equal(t, []string{"site", "user"}, cfg.Namespaces)
	})

	t.Run("empty env vars keep existing values", func(t *testing.T) {
		t.Setenv("BBC_CONTENT_URL", "https://override.example.com")
		t.Setenv("BBC_CONTENT_TOKEN", "")
		t.Setenv("CONTENT_API_TOKEN", "")
		t.Setenv("BBC_MAX_DEPTH", "many")

		cfg := &Config{
			ContentURL:   "https://original.example.com",
			ContentToken: "original",
			MaxDepth:     8,
		}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://override.example.com", cfg.ContentURL)
		assert.Equal(t, "original", cfg.ContentToken)
		assert.Equal(t, 8, cfg.MaxDepth)
	})

	t.Run("CONTENT_API_* fallback", func(t *testing.T) {
		t.Setenv("BBC_CONTENT_URL", "")
		t.Setenv("BBC_CONTENT_TOKEN", "")
		t.Setenv("CONTENT_API_URL", "https://shared.example.com")
		t.Setenv("CONTENT_API_TOKEN", "shared-token")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "https://shared.example.com", cfg.ContentURL)
		assert.Equal(t, "shared-token", cfg.ContentToken)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "bbc", "config.yml"), DefaultConfigPath())
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "bbc", "config.yml"), DefaultConfigPath())
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		MediaURL:     "/media",
		ContentURL:   "https://content.example.com",
		ContentToken: "test-token",
		CodeStyle:    "github",
		MaxDepth:     16,
		Namespaces:   []string{"site"},
		Copyright:    "Example Corp",
		OutputFormat: "plain",
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("BBC_CODE_STYLE", "")

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("max_depth: [nope"), 0600))
		_, err := LoadWithEnv(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestGetEnvWithFallback(t *testing.T) {
	t.Run("returns primary when set", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "primary-value")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "primary-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns fallback when primary empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "fallback-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})
}

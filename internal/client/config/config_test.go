package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvCanvasURL, EnvWindowTitle, EnvIconPath, EnvLogLevel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DefaultWindowTitle, c.WindowTitle)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Empty(t, c.CanvasURL)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"canvas_url": "https://school.instructure.com",
		"log_level":  "debug",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "https://school.instructure.com", cfg.CanvasURL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, DefaultWindowTitle, cfg.WindowTitle, "absent keys keep defaults")
	})

	t.Run("loads from -c", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-c", path}))
		assert.Equal(t, "https://school.instructure.com", cfg.CanvasURL)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{}
		err := parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")})
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, []string{"-c", bad})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CCU_CANVAS_URL=https://from-file.edu\nCCU_WINDOW_TITLE=File Title\n"), 0o600))

	t.Setenv(EnvWindowTitle, "Env Title")

	cfg := &Config{CanvasURL: "https://json.edu", LogLevel: "warn"}
	require.NoError(t, parseEnv(cfg, envFile))

	assert.Equal(t, "https://from-file.edu", cfg.CanvasURL)
	assert.Equal(t, "Env Title", cfg.WindowTitle, "process env wins over .env")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseEnv_MissingFileIsFine(t *testing.T) {
	clearEnv(t)
	cfg := &Config{CanvasURL: "https://json.edu"}
	require.NoError(t, parseEnv(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, "https://json.edu", cfg.CanvasURL)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{"-u", "https://flag.edu", "-t", "Title", "-l", "info", "-c", "x.json"},
			expected: &Config{CanvasURL: "https://flag.edu", WindowTitle: "Title", LogLevel: "info"}},
		{name: "equals form", args: []string{"-u=https://eq.edu"},
			expected: &Config{CanvasURL: "https://eq.edu"}},
		{name: "no flags", args: nil, expected: &Config{}},
		{name: "missing value", args: []string{"-u"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestValidate(t *testing.T) {
	icon := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(icon, []byte("png"), 0o600))

	t.Run("ok trims slash", func(t *testing.T) {
		c := &Config{CanvasURL: "https://school.edu/", IconPath: icon}
		require.NoError(t, c.Validate())
		assert.Equal(t, "https://school.edu", c.CanvasURL)
		assert.Equal(t, DefaultWindowTitle, c.WindowTitle)
		assert.Equal(t, icon, c.IconPath)
		assert.Empty(t, c.Warnings)
	})

	t.Run("missing url", func(t *testing.T) {
		assert.ErrorIs(t, (&Config{}).Validate(), ErrInvalidConfig)
	})

	t.Run("relative url", func(t *testing.T) {
		assert.ErrorIs(t, (&Config{CanvasURL: "school.edu"}).Validate(), ErrInvalidConfig)
	})

	t.Run("missing icon warns", func(t *testing.T) {
		c := &Config{CanvasURL: "https://school.edu", IconPath: "nope.png"}
		require.NoError(t, c.Validate())
		assert.Empty(t, c.IconPath)
		assert.Len(t, c.Warnings, 1)
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{
		"canvas_url":   "https://json.edu",
		"window_title": "From JSON",
	})
	t.Setenv(EnvWindowTitle, "From Env")

	cfg, err := LoadConfig([]string{"-c", path, "-u", "https://flag.edu"})
	require.NoError(t, err)

	want := &Config{CanvasURL: "https://flag.edu", WindowTitle: "From Env", LogLevel: DefaultLogLevel}
	assert.Empty(t, cmp.Diff(want, cfg, cmpopts.EquateEmpty()))
}

func TestLoadConfig_RequiresFile(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

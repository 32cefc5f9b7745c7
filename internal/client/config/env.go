package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvCanvasURL   = "CCU_CANVAS_URL"
	EnvWindowTitle = "CCU_WINDOW_TITLE"
	EnvIconPath    = "CCU_ICON_PATH"
	EnvLogLevel    = "CCU_LOG_LEVEL"
)

// parseEnv overlays cfg with CCU_* variables. Values from envFile are used
// when the process environment does not set them; a missing file is fine.
func parseEnv(cfg *Config, envFile string) error {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if vals != nil {
			fileVals = vals
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVals[key]
	}

	overlay(&cfg.CanvasURL, lookup(EnvCanvasURL))
	overlay(&cfg.WindowTitle, lookup(EnvWindowTitle))
	overlay(&cfg.IconPath, lookup(EnvIconPath))
	overlay(&cfg.LogLevel, lookup(EnvLogLevel))
	return nil
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty values
// leave the current setting untouched.
type JsonConfig struct {
	CanvasURL   string `json:"canvas_url"`
	WindowTitle string `json:"window_title"`
	IconPath    string `json:"icon_path"`
	LogLevel    string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, or
// config.json in the working directory. The file must exist.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args, DefaultConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	overlay(&cfg.CanvasURL, jc.CanvasURL)
	overlay(&cfg.WindowTitle, jc.WindowTitle)
	overlay(&cfg.IconPath, jc.IconPath)
	overlay(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

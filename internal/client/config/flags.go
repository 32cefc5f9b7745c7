package config

import (
	"flag"
	"io"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   Canvas instance URL
//	-t string   window title
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.CanvasURL, "u", cfg.CanvasURL, "Canvas instance URL")
	fs.StringVar(&cfg.WindowTitle, "t", cfg.WindowTitle, "window title")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/cli"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/client/config"
	"github.com/AMichaelP/Canvas-Content-Uploader/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			fmt.Fprintln(os.Stderr, "Config file is missing. Create config.json with canvas_url or pass -c <path>.")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, w := range cfg.Warnings {
		logger.Warn(ctx, w)
	}

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}

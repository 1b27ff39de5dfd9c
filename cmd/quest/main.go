package main

import (
	"log/slog"
	"os"

	"github.com/templui/eternalquest/cmd/quest/cmd"
	"github.com/templui/eternalquest/internal/app"
	"github.com/templui/eternalquest/internal/config"
	"github.com/templui/eternalquest/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app := app.New(cfg)

	err := cmd.RootCmd(app).Execute()

	closeErr := app.Close()
	if closeErr != nil {
		slog.Error("failed to close app", "error", closeErr)
	}
	logger.Flush()

	if err != nil {
		os.Exit(1)
	}
}

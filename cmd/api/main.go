package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/limbo/lumin/internal/service"
	"github.com/limbo/lumin/pkg/cleanup"
	"github.com/limbo/lumin/pkg/config"
	"github.com/limbo/lumin/pkg/logging"
)

func init() {
	service.InitValidator()
}

// App is shared by every command.
type App struct {
	Config *config.Config
	Logger *slog.Logger
}

var CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations."`
	Levels  LevelsCmd  `cmd:"" help:"Print the XP needed for each level."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("lumin"),
		kong.Description("Journal, streaks and goals with XP, levels and an AI coach"),
		kong.UsageOnError(),
	)
	cfg := config.New()
	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	slog.SetDefault(logger)

	err := kctx.Run(&App{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("command failed", slog.String("command", kctx.Command()), slog.String("error", err.Error()))
	}
	if cerr := cleanup.CleanUp(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

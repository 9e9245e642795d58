package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/limbo/lumin/pkg/cleanup"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string
	Format string
	// File enables a rotating log file next to stdout
	File string
}

// New builds the root slog.Logger. Format "json" writes slog JSON records,
// anything else is rendered by charmbracelet/log.
func New(cfg Config) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing log file",
			F:    fileWriter.Close,
		})
		w = io.MultiWriter(os.Stdout, fileWriter)
	}
	return NewWithWriter(w, cfg)
}

func NewWithWriter(w io.Writer, cfg Config) *slog.Logger {
	level := parseLevel(cfg.Level)
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.Level(level),
		Prefix:          "lumin",
	})
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

package main

import (
	"database/sql"
	"errors"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"
)

type MigrateCmd struct {
	Direction string `arg:"" optional:"" enum:"up,down,status" default:"up" help:"One of up, down, status."`
	Dir       string `help:"Migrations directory, overrides MIGRATIONS_DIR." type:"path"`
	SSLMode   string `name:"sslmode" default:"disable" help:"Postgres sslmode."`
}

func (c *MigrateCmd) Run(app *App) error {
	dir := app.Config.MigrationsDir
	if c.Dir != "" {
		dir = c.Dir
	}
	db, err := sql.Open("postgres", dbConfig(app.Config).ConnString()+"?sslmode="+c.SSLMode)
	if err != nil {
		return errors.New("opening database error: " + err.Error())
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	switch c.Direction {
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	default:
		err = goose.Up(db, dir)
	}
	if err != nil {
		return errors.New("migration " + c.Direction + " error: " + err.Error())
	}
	app.Logger.Info("migrations applied", slog.String("direction", c.Direction), slog.String("dir", dir))
	return nil
}

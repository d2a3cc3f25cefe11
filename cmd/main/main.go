package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"timetrack/pkg/config"
	"timetrack/pkg/controller"
	"timetrack/pkg/db"
)

func main() {
	ctx := context.Background()

	configPath, err := config.DefaultPath()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	if err := config.EnsureDirs(cfg); err != nil {
		panic(err)
	}

	filePerms := 0o666

	// the terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = log.With().Caller().Logger().Level(level).Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		panic(err)
	}

	defer database.Close()

	controller, err := controller.NewController(ctx, database, cfg)
	if err != nil {
		panic(err)
	}

	controller.Go()
}

package main

import (
	"campusHub/internal/clubauth"
	"campusHub/internal/config"
	"campusHub/internal/lib/logger/handlers/slogpretty"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/storage/postgres"
	"context"
	"flag"
	"log/slog"
	"os"
	"time"
)

// The access code is read from the environment so it stays out of shell
// history.
const accessCodeEnv = "CLUB_ACCESS_CODE"

func main() {
	id := flag.String("id", "", "club id")
	name := flag.String("name", "", "club display name")
	flag.Parse()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	club, err := clubauth.Provision(ctx, storage, *id, *name, os.Getenv(accessCodeEnv))
	if err != nil {
		log.Error("failed to provision club", sl.Err(err))
		os.Exit(1)
	}

	log.Info("club provisioned", slog.String("club_id", club.ID), slog.String("name", club.Name))
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
		}
		return slog.New(opts.NewPrettyHandler(os.Stdout))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

package main

import (
	"campusHub/internal/config"
	"campusHub/internal/kiosk"
	"campusHub/internal/lib/logger/handlers/slogpretty"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/scanner"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const retryEvery = 5 * time.Second

func main() {
	cfg := config.MustLoadKiosk()

	log := setupLogger(cfg.Env)

	log.Info("Starting check-in kiosk",
		slog.String("api", cfg.APIBaseURL),
		slog.String("environment_device", cfg.EnvironmentDevice),
		slog.String("user_device", cfg.UserDevice),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := scanner.NewSession(log, scanner.FileOpener{Paths: map[scanner.Facing]string{
		scanner.FacingEnvironment: cfg.EnvironmentDevice,
		scanner.FacingUser:        cfg.UserDevice,
	}})

	client := kiosk.NewClient(cfg.APIBaseURL, cfg.Token, cfg.RequestTimeout)

	err := kiosk.New(log, session, client, os.Stdout, retryEvery).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("kiosk stopped", sl.Err(err))
		os.Exit(1)
	}

	log.Info("kiosk stopped")
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
		}
		return slog.New(opts.NewPrettyHandler(os.Stderr))
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

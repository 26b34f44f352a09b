package main

import (
	"campusHub/internal/blobstore"
	"campusHub/internal/config"
	"campusHub/internal/http-server/handlers/relay/getEvent"
	"campusHub/internal/http-server/handlers/relay/getUserEmail"
	"campusHub/internal/http-server/handlers/relay/saveEvent"
	"campusHub/internal/http-server/handlers/relay/send"
	"campusHub/internal/http-server/handlers/relay/sendConnectionEmail"
	"campusHub/internal/http-server/handlers/relay/sendDirect"
	"campusHub/internal/http-server/middleware/mwlogger"
	"campusHub/internal/lib/logger/handlers/slogpretty"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/mailer"
	"campusHub/internal/storage/postgres"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

const (
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoadRelay()

	log := setupLogger(cfg.Env)

	log.Info("Starting mail relay", slog.String("env", cfg.Env), slog.Int("port", cfg.Port))

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	blobs, err := blobstore.New(cfg.BlobDir)
	if err != nil {
		log.Error("failed to init blob store", sl.Err(err))
		os.Exit(1)
	}

	mail := mailer.New(log, cfg.Mailer)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)

	router.Post("/send-connection-email", sendConnectionEmail.New(log, storage, mail))
	router.Post("/send", send.New(log, storage, mail))
	router.Post("/send-direct", sendDirect.New(log, mail))
	router.Get("/get-user-email/{userId}", getUserEmail.New(log, storage))
	router.Post("/api/save-event", saveEvent.New(log, blobs))
	router.Get("/api/event/{eventId}", getEvent.New(log, blobs))

	addr := ":" + strconv.Itoa(cfg.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info("starting server", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("relay stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("relay stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
		}
		return slog.New(opts.NewPrettyHandler(os.Stdout))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

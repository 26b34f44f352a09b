package main

import (
	"campusHub/internal/broker"
	"campusHub/internal/checkin"
	"campusHub/internal/clubauth"
	"campusHub/internal/config"
	"campusHub/internal/http-server/handlers/auth/clubLogin"
	"campusHub/internal/http-server/handlers/checkin/scanTicket"
	"campusHub/internal/http-server/handlers/event/createEvent"
	"campusHub/internal/http-server/handlers/event/deleteEvent"
	"campusHub/internal/http-server/handlers/event/getAllEvents"
	"campusHub/internal/http-server/handlers/event/getEventInfo"
	"campusHub/internal/http-server/handlers/lostfound/matchItems"
	"campusHub/internal/http-server/handlers/realtime/subscribe"
	"campusHub/internal/http-server/handlers/registration/cancelRegistration"
	"campusHub/internal/http-server/handlers/registration/getTicket"
	"campusHub/internal/http-server/handlers/registration/register"
	"campusHub/internal/http-server/handlers/roster/listAttendees"
	"campusHub/internal/http-server/handlers/roster/setStatus"
	"campusHub/internal/http-server/middleware/mwauth"
	"campusHub/internal/http-server/middleware/mwlogger"
	"campusHub/internal/lib/logger/handlers/slogpretty"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/lib/session"
	"campusHub/internal/mailer"
	"campusHub/internal/notifier"
	"campusHub/internal/notify"
	"campusHub/internal/realtime"
	"campusHub/internal/registration"
	"campusHub/internal/roster"
	"campusHub/internal/scheduler"
	"campusHub/internal/storage/postgres"
	"campusHub/internal/ticket"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting campus hub", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	hub := realtime.NewHub(log)
	sinks := []notify.Sink{hub}

	publisher, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Error("broker unavailable, email notifications disabled", sl.Err(err))
	} else {
		sinks = append(sinks, publisher)
	}

	dispatcher := notify.NewDispatcher(log, sinks...)

	registrations := registration.New(log, storage, ticket.NewEncoder(), dispatcher)
	checkins := checkin.New(log, storage, dispatcher)
	rosters := roster.New(log, storage, dispatcher)
	clubs := clubauth.New(log, storage, sessions)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwauth.New(log, sessions))

	router.Post("/auth/club-login", clubLogin.New(log, clubs))

	router.Get("/events", getAllEvents.New(log, storage))
	router.Get("/events/{id}", getEventInfo.New(log, storage))
	router.Post("/lost-found/match", matchItems.New(log))

	router.Group(func(r chi.Router) {
		r.Use(mwauth.RequireAuth)

		r.Post("/events/{id}/register", register.New(log, registrations))
		r.Delete("/events/{id}/register", cancelRegistration.New(log, registrations))
		r.Get("/events/{id}/ticket", getTicket.New(log, registrations))
	})

	router.Group(func(r chi.Router) {
		r.Use(mwauth.RequireOrganizer)

		r.Post("/events", createEvent.New(log, storage))
		r.Delete("/events/{id}", deleteEvent.New(log, storage))
		r.Get("/events/{id}/attendees", listAttendees.New(log, rosters))
		r.Put("/events/{id}/attendees/{userID}/status", setStatus.New(log, rosters))
		r.Post("/checkin/scan", scanTicket.New(log, checkins))
		r.Get("/events/{id}/live", subscribe.New(log, storage, hub))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs, err := scheduler.New(log, storage, cfg.Scheduler.RefreshStatuses, cfg.Scheduler.ClosingSoonWindow)
	if err != nil {
		log.Error("failed to init scheduler", sl.Err(err))
		os.Exit(1)
	}
	jobs.Start()

	worker, consumer := startNotifier(ctx, log, cfg, storage)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	hub.Close()
	jobs.Stop()

	if worker != nil {
		worker.Stop()
	}
	if consumer != nil {
		if err = consumer.Close(); err != nil {
			log.Error("failed to close broker consumer", sl.Err(err))
		}
	}
	if publisher != nil {
		if err = publisher.Close(); err != nil {
			log.Error("failed to close broker publisher", sl.Err(err))
		}
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

// startNotifier runs the email worker when both the broker and the mail
// provider are configured. Either missing leaves the server running
// without email.
func startNotifier(ctx context.Context, log *slog.Logger, cfg *config.Config, storage *postgres.Storage) (*notifier.Worker, *broker.Consumer) {
	if cfg.Mailer.APIKey == "" {
		log.Warn("MAIL_API_KEY is not set, email notifications disabled")
		return nil, nil
	}

	consumer, err := broker.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, notifier.Keys)
	if err != nil {
		log.Error("failed to start broker consumer", sl.Err(err))
		return nil, nil
	}

	worker := notifier.New(log, consumer, storage, mailer.New(log, cfg.Mailer))
	if err = worker.Start(ctx); err != nil {
		log.Error("failed to start notifier", sl.Err(err))
		_ = consumer.Close()
		return nil, nil
	}

	return worker, consumer
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}

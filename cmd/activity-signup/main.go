package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"activitySignup/internal/config"
	"activitySignup/internal/http-server/handlers/activity/getAllActivities"
	"activitySignup/internal/http-server/handlers/activity/signupParticipant"
	"activitySignup/internal/http-server/handlers/activity/unregisterParticipant"
	"activitySignup/internal/http-server/middleware/mwlogger"
	"activitySignup/internal/lib/logger/handlers/slogpretty"
	"activitySignup/internal/lib/logger/sl"
	"activitySignup/internal/models"
	"activitySignup/internal/storage"
	"activitySignup/internal/storage/memory"
	"activitySignup/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting activity signup", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	activities, err := config.LoadActivities(cfg.ActivitiesFile)
	if err != nil {
		log.Error("failed to load activities", sl.Err(err))
		os.Exit(1)
	}

	log.Info("activities loaded",
		slog.String("file", cfg.ActivitiesFile),
		slog.Int("count", len(activities)),
	)

	store, err := setupStorage(cfg, activities)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	log.Info("storage ready", slog.String("backend", cfg.Storage))

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	fs := http.FileServer(http.Dir("./static/"))
	router.Handle("/static/*", http.StripPrefix("/static/", fs))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	router.Get("/activities", getAllActivities.New(log, store))
	router.Post("/activities/{name}/signup", signupParticipant.New(log, store))
	router.Delete("/activities/{name}/unregister", unregisterParticipant.New(log, store))

	router.Handle("/metrics", promhttp.Handler())

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = store.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg *config.Config, activities map[string]models.Activity) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		store, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, err
		}

		if err = store.SeedActivities(activities); err != nil {
			return nil, err
		}

		return store, nil
	case config.StorageMemory:
		return memory.New(activities), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
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

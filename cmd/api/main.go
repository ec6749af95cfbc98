package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"weatherapi/internal/config"
	"weatherapi/internal/database"
	"weatherapi/internal/database/migration"
	handlers "weatherapi/internal/http/handler"
	"weatherapi/internal/http/middleware"
	"weatherapi/internal/logging"
	"weatherapi/internal/repository/postgres"
	"weatherapi/internal/service"
	"weatherapi/internal/storage"
	"weatherapi/internal/telemetry"
	"weatherapi/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

// @title Weather API
// @version 1.0
// @description Pass-through proxy for the OpenWeatherMap current weather and forecast endpoints.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location(), cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Str("event", "startup_failed").Send()
	}
}

func run(cfg *config.AppConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Weather.APIKey == "" {
		log.Warn().Str("event", "api_key_missing").Msg("WEATHER_API_KEY is empty; the provider will reject lookups")
	}

	tp, shutdownTracing, err := telemetry.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Str("event", "tracing_shutdown_failed").Send()
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	upstreamMetrics, err := upstream.NewMetrics(reg)
	if err != nil {
		return err
	}
	client, err := upstream.New(cfg.Weather, upstream.WithMetrics(upstreamMetrics))
	if err != nil {
		return err
	}

	opts := []service.Option{service.WithLogger(logging.Component(log, "service"))}

	// The journal and archive are optional sinks; the proxy runs without them.
	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = database.OpenJournal(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return err
		}
		opts = append(opts, service.WithJournal(postgres.NewLookupPostgres(db)))
	}
	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithArchive(store))
	}

	weatherSvc := service.NewWeatherService(client, opts...)
	log.Info().
		Str("event", "sinks_configured").
		Bool("journal_enabled", weatherSvc.JournalEnabled()).
		Bool("archive_enabled", weatherSvc.ArchiveEnabled()).
		Send()

	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Tracing(tp))
	app.Use(middleware.Logger(log))
	app.Use(promMw.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Weather:  weatherSvc,
		DB:       db,
		Gatherer: reg,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("event", "server_started").Str("addr", addr).Send()
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Str("event", "server_stopping").Send()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

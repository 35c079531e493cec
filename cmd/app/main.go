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

	"lifebank/cmd"
	"lifebank/internal/adapters/in/auth"
	lbhttp "lifebank/internal/adapters/in/http"
	"lifebank/internal/adapters/out/events"
	"lifebank/internal/adapters/out/kafka"
	"lifebank/internal/adapters/out/postgres"
	lbredis "lifebank/internal/adapters/out/redis"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(configs)
	m := metrics.New()

	publisher, closePublishers := buildPublisher(ctx, configs, logger)
	defer closePublishers()

	tokens, err := auth.NewTokenService(configs.JWTSigningKey, configs.JWTIssuer)
	if err != nil {
		log.Fatalf("JWT configuration: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger, m)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := buildWebServer(&app, tokens, logger)

	if err = run(ctx, e, configs.HTTPPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("Error loading .env file, using the environment: %v", err)
	}

	config := cmd.Config{
		HTTPPort:                      envOrDefault("HTTP_PORT", "8080"),
		DBHost:                        os.Getenv("DB_HOST"),
		DBPort:                        envOrDefault("DB_PORT", "5432"),
		DBUser:                        os.Getenv("DB_USER"),
		DBPassword:                    os.Getenv("DB_PASSWORD"),
		DBName:                        os.Getenv("DB_NAME"),
		DBSslMode:                     envOrDefault("DB_SSLMODE", "disable"),
		JWTSigningKey:                 os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:                     envOrDefault("JWT_ISSUER", "lifebank"),
		KafkaHost:                     os.Getenv("KAFKA_HOST"),
		KafkaRequestEventsTopicPrefix: envOrDefault("KAFKA_REQUEST_EVENTS_TOPIC_PREFIX", "lifebank."),
		RedisURL:                      os.Getenv("REDIS_URL"),
		OverdueScanSchedule:           os.Getenv("OVERDUE_SCAN_SCHEDULE"),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(postgres.Models()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// buildPublisher always logs notifications and additionally sends them to
// Kafka and Redis when those are configured.
func buildPublisher(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	publishers := []ports.EventPublisher{events.NewLogPublisher(logger)}
	closers := make([]func(), 0)

	if configs.KafkaHost != "" {
		client, err := kafka.NewClient(configs.KafkaHost)
		if err != nil {
			log.Fatalf("Failed to create Kafka client: %v", err)
		}
		closers = append(closers, client.Close)

		publisher, err := kafka.NewPublisher(client, configs.KafkaRequestEventsTopicPrefix)
		if err != nil {
			log.Fatalf("Failed to create Kafka publisher: %v", err)
		}
		publishers = append(publishers, publisher)
	}

	if configs.RedisURL != "" {
		client, err := lbredis.NewClient(ctx, configs.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		publishers = append(publishers, lbredis.NewPublisher(client, ""))
	}

	return events.NewFanOutPublisher(publishers...), func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

func buildWebServer(app *cmd.CompositionRoot, tokens *auth.TokenService, logger *slog.Logger) *echo.Echo {
	initialize := app.CreateInitializeCommandHandler()
	createRequest := app.CreateCreateRequestCommandHandler()
	updateStatus := app.CreateUpdateRequestStatusCommandHandler()
	assignUnits := app.CreateAssignBloodUnitsCommandHandler()

	server := lbhttp.NewServer(lbhttp.Handlers{
		Initialize:    &initialize,
		CreateRequest: &createRequest,
		UpdateStatus:  &updateStatus,
		AssignUnits:   &assignUnits,
		GetRequest:    app.CreateGetRequestQueryHandler(),
		ListRequests:  app.CreateListRequestsQueryHandler(),
		ListOverdue:   app.CreateGetOverdueRequestsQueryHandler(),
	}, app.Authenticator())

	return lbhttp.NewEcho(server, tokens, promhttp.Handler(), logger)
}

// run serves HTTP until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, e *echo.Echo, port string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

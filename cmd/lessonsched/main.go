// Command lessonsched runs the lesson-scheduling CLI: it wires the
// solver façade to persistence, caching, and event-delivery
// infrastructure selected from the environment, then hands off to
// cobra for argument parsing.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/lessonsched/adapter/cli"
	"github.com/felixgeelhaar/lessonsched/adapter/cli/schedule"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/queries"
	schedcache "github.com/felixgeelhaar/lessonsched/internal/scheduling/infrastructure/cache"
	schedpersistence "github.com/felixgeelhaar/lessonsched/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/lessonsched/pkg/config"
	"github.com/felixgeelhaar/lessonsched/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	ctx := context.Background()

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := runMigrations(ctx, conn); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	solutionRepo := newSolutionRepository(conn, cfg, logger)
	resultCache := newResultCache(ctx, cfg, logger)
	outboxRepo, publisher := newEventInfrastructure(conn, cfg, logger)
	health := newHealthRegistry(conn, cfg)

	uow := database.NewUnitOfWork(conn)

	solveHandler := commands.NewSolveScheduleHandler(solutionRepo, uow, outboxRepo, logger)
	getSolutionHandler := queries.NewGetSolutionHandler(solutionRepo, resultCache, logger)

	if cfg.OutboxProcessorEnabled {
		processor := outbox.NewProcessor(outboxRepo, publisher, outbox.ProcessorConfig{
			PollInterval: cfg.OutboxPollInterval,
			BatchSize:    cfg.OutboxBatchSize,
			MaxRetries:   cfg.OutboxMaxRetries,
		}, logger)
		if err := processor.Start(ctx); err != nil {
			logger.Error("failed to start outbox processor", "error", err)
			os.Exit(1)
		}
		defer processor.Stop()
	}

	cli.SetApp(cli.NewApp(solveHandler, getSolutionHandler, health))
	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(cli.HealthCmd)
	cli.Execute()
}

func openDatabase(ctx context.Context, cfg *config.Config) (database.Connection, error) {
	dbCfg := database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	}
	switch {
	case cfg.IsPostgres():
		dbCfg.Driver = database.DriverPostgres
	case cfg.IsSQLite():
		dbCfg.Driver = database.DriverSQLite
	}
	return database.NewConnection(ctx, dbCfg)
}

func runMigrations(ctx context.Context, conn database.Connection) error {
	switch c := conn.(type) {
	case *postgres.Connection:
		return migrations.RunPostgresMigrations(ctx, c.Pool())
	case *sqlite.Connection:
		return migrations.RunSQLiteMigrations(ctx, c.DB())
	default:
		return fmt.Errorf("unsupported connection type for migrations: %T", conn)
	}
}

func newSolutionRepository(conn database.Connection, cfg *config.Config, logger *slog.Logger) schedpersistence.SolutionRepository {
	var inner schedpersistence.SolutionRepository
	if conn.Driver() == database.DriverPostgres {
		inner = schedpersistence.NewPostgresRepository(conn)
	} else {
		inner = schedpersistence.NewSQLiteRepository(conn)
	}
	return schedpersistence.NewBreakerRepository(inner, cfg.StorageBreakerThreshold, logger)
}

func newResultCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) schedcache.Cache {
	if cfg.IsLocalMode() {
		return schedcache.NoopCache{}
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr(cfg.RedisURL)})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable at startup, falling back to noop cache", "error", err)
		return schedcache.NoopCache{}
	}
	return schedcache.NewBreakerCache(schedcache.NewRedisCache(client), cfg.CacheBreakerThreshold, logger)
}

func redisAddr(url string) string {
	// go-redis's ParseURL handles the full redis:// scheme; Addr alone
	// is kept here for the minimal case where only host:port is set.
	opts, err := redis.ParseURL(url)
	if err != nil {
		return url
	}
	return opts.Addr
}

func newEventInfrastructure(conn database.Connection, cfg *config.Config, logger *slog.Logger) (outbox.Repository, eventbus.Publisher) {
	var repo outbox.Repository
	if conn.Driver() == database.DriverPostgres {
		repo = outbox.NewPostgresRepository(conn)
	} else {
		repo = outbox.NewSQLiteRepository(conn)
	}

	if cfg.IsLocalMode() {
		bus := eventbus.NewInProcessEventBus(logger)
		return repo, eventbus.NewInProcessPublisher(bus, logger)
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable at startup, falling back to noop publisher", "error", err)
		return repo, eventbus.NewNoopPublisher(logger)
	}
	return repo, publisher
}

func newHealthRegistry(conn database.Connection, cfg *config.Config) *observability.HealthRegistry {
	registry := observability.NewHealthRegistry()
	registry.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	if cfg.IsLocalMode() {
		return registry
	}

	registry.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		client := redis.NewClient(&redis.Options{Addr: redisAddr(cfg.RedisURL)})
		defer client.Close()
		return client.Ping(ctx).Err()
	}))

	registry.Register("rabbitmq", observability.RabbitMQHealthChecker(func(ctx context.Context) error {
		amqpConn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		return amqpConn.Close()
	}))

	return registry
}

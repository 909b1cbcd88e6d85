package appcontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/infra/logger"
	"github.com/RoyceAzure/lab/storefront/internal/infra/metrics"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf              *config.Config
	Logger          *zerolog.Logger
	logCloser       io.Closer
	DbConn          *gorm.DB
	DbDao           db.UnifiedDB
	RedisClient     *redis.Client
	CheckoutLimiter ratelimit.Limiter
	Publisher       producer.OrderEventProducer
	Metrics         *metrics.ServerMetrics
	TokenMaker      *auth.JWTMaker
	UserService     service.IUserService
	CatalogService  service.ICatalogService
	CartService     service.ICartService
	CheckoutService service.ICheckoutService
	OrderService    service.IOrderService
	PaymentService  service.IPaymentService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	app.setUpLogger()
	app.Logger.Info().
		Str("module", cf.ModulerName).
		Str("env", cf.Env).
		Str("server_port", cf.ServerPort).
		Str("db_host", cf.DbHost).
		Str("db_name", cf.DbName).
		Bool("redis", cf.RedisAddr != "").
		Strs("kafka_brokers", cf.Brokers()).
		Msg("load config")

	if err := app.Init(); err != nil {
		app.Shutdown(context.Background())
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpdbConn,
		app.setUpdbDao,
		app.setUpMigration,
		app.setUpMetrics,
		app.setUpRateLimiter,
		app.setUpProducer,
		app.setTokenMaker,
		app.setUpServices,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (app *ApplicationContext) setUpLogger() {
	l, closer := logger.New(logger.Config{
		Level:  app.Cf.LogLevel,
		Env:    app.Cf.Env,
		File:   app.Cf.LogFile,
		Module: app.Cf.ModulerName,
	})
	app.Logger = &l
	app.logCloser = closer
}

func (app *ApplicationContext) setUpdbConn() error {
	app.Logger.Info().Msg("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	app.DbConn = conn
	app.Logger.Info().Msg("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	app.Logger.Info().Msg("Start setup database DAO")
	app.DbDao = db.NewUnifiedDB(app.DbConn)
	app.Logger.Info().Msg("Finish setup database DAO")
	return nil
}

// setUpMigration 有設定 MIGRATION_URL 時跑 golang-migrate, 否則用 gorm AutoMigrate
func (app *ApplicationContext) setUpMigration() error {
	app.Logger.Info().Msg("Start setup db migration")
	if app.Cf.MigrationURL == "" {
		if err := app.DbDao.InitMigrate(); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	} else {
		source := db.MigrateSource(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
		if err := runDBMigration(app.Cf.MigrationURL, source); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	app.Logger.Info().Msg("Finish setup db migration")
	return nil
}

func runDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}
	defer migration.Close()

	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpMetrics() error {
	app.Metrics = metrics.NewServerMetrics()
	return nil
}

// setUpRateLimiter 沒有 redis 時退回單機版 token bucket
func (app *ApplicationContext) setUpRateLimiter() error {
	app.Logger.Info().Msg("Start setup checkout rate limiter")
	cfg := &ratelimit.LimiterConfig{
		Prefix:   "storefront:checkout",
		Capacity: app.Cf.CheckoutRateCapacity,
		RatePS:   app.Cf.CheckoutRatePerSec,
		TTL:      10 * time.Minute,
	}
	if app.Cf.RedisAddr == "" {
		app.CheckoutLimiter = ratelimit.NewTokenBucket(cfg)
		app.Logger.Info().Msg("Finish setup checkout rate limiter (local)")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
		DB:       app.Cf.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("connect redis: %w", err)
	}
	app.RedisClient = client
	app.CheckoutLimiter = ratelimit.NewRsBucketToken(client, cfg)
	app.Logger.Info().Msg("Finish setup checkout rate limiter (redis)")
	return nil
}

// setUpProducer 沒有設定 broker 時不發事件
func (app *ApplicationContext) setUpProducer() error {
	app.Logger.Info().Msg("Start setup order event producer")
	cfg := producer.Config{
		Brokers:       app.Cf.Brokers(),
		Topic:         app.Cf.KafkaOrderTopic,
		RetryAttempts: 3,
		BatchTimeout:  50 * time.Millisecond,
	}
	if !cfg.Enabled() {
		app.Publisher = producer.NoopProducer{}
		app.Logger.Warn().Msg("kafka brokers not configured, order events disabled")
		return nil
	}
	app.Publisher = producer.NewKafkaOrderProducer(producer.NewKafkaWriter(cfg, app.Logger), cfg)
	app.Logger.Info().Str("topic", cfg.Topic).Msg("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	app.Logger.Info().Msg("Start setup token maker")
	tokenMaker, err := auth.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	app.Logger.Info().Msg("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.Logger.Info().Msg("Start setup services")
	app.UserService = service.NewUserService(app.DbDao)
	app.CatalogService = service.NewCatalogService(app.DbDao, app.Logger)
	app.CartService = service.NewCartService(app.DbDao, app.Logger)
	app.CheckoutService = service.NewCheckoutService(app.DbDao, app.Publisher, app.Metrics, app.Logger)
	app.OrderService = service.NewOrderService(app.DbDao, app.Publisher, app.Metrics, app.Logger)
	app.PaymentService = service.NewPaymentService(app.DbDao, app.Logger)
	app.Logger.Info().Msg("Finish setup services")
	return nil
}

// Shutdown 依序關閉 producer, redis, db, 有錯誤不中斷流程
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error
		if app.Publisher != nil {
			app.Logger.Info().Msg("Closing order event producer...")
			if err := app.Publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close producer: %w", err))
			}
		}
		if app.RedisClient != nil {
			app.Logger.Info().Msg("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close redis: %w", err))
			}
		}
		if app.DbConn != nil {
			app.Logger.Info().Msg("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					errs = append(errs, fmt.Errorf("close database: %w", err))
				}
			}
		}
		done <- errors.Join(errs...)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
	if err != nil {
		app.Logger.Error().Err(err).Msg("application shutdown finished with error")
	} else {
		app.Logger.Info().Msg("Application shutdown complete")
	}
	app.logCloser.Close()
	return err
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-profile-api/config"
	"user-profile-api/internal/application/ports"
	"user-profile-api/internal/application/services"
	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/infrastructure/db/memory"
	"user-profile-api/internal/infrastructure/db/postgres"
	"user-profile-api/internal/infrastructure/db/postgres/user"
	"user-profile-api/internal/infrastructure/jwt"
	"user-profile-api/internal/infrastructure/metrics"
	"user-profile-api/internal/infrastructure/mq"
	"user-profile-api/internal/infrastructure/tracing"
	"user-profile-api/internal/interface/api/rest"
	"user-profile-api/internal/interface/api/rest/middleware"
	"user-profile-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	userRepo   domain.Repository
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	tp         *sdktrace.TracerProvider
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Info("no .env file loaded, using process environment", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)
	mDuration := metrics.NewRequestDuration(prometheus.DefaultRegisterer)

	// tracing
	tp, err := tracing.New(ctx, cfg.Tracing, cfg.App.Name)
	if err != nil && !errors.Is(err, tracing.ErrDisabled) {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if tp != nil {
		r.Use(tracing.Middleware(cfg.App.Name))
	}
	r.Use(middleware.RequestLogGin(logger, mCounter, mDuration))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := &App{
		logger:   logger,
		cfg:      cfg,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		tp:       tp,
	}

	// storage
	if err = app.initStorage(ctx); err != nil {
		app.Close()
		return nil, err
	}

	// rabbitMQ
	if cfg.MQ.Enabled {
		if err = app.initMQ(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}

	return app, nil
}

func (a *App) initStorage(ctx context.Context) error {
	if a.cfg.Storage.Driver == config.StorageDriverMemory {
		a.logger.Warn("using in-memory storage, records are lost on restart")
		a.userRepo = memory.NewUserRepository()
		return nil
	}

	dbDsn, err := a.cfg.DBDSN()
	if err != nil {
		return fmt.Errorf("DB config error: %w", err)
	}
	if a.cfg.Storage.AutoMigrate {
		if err = postgres.MigrateUp(dbDsn, a.logger); err != nil {
			return err
		}
	}
	if a.db, err = postgres.New(ctx, a.logger, dbDsn); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.userRepo = user.NewRepository(a.db)

	return nil
}

func (a *App) initMQ(ctx context.Context) error {
	rabbitDsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	rmqConsumer := rmqconsumer.New(a.cfg.MQ, a.logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = rmqConsumer

	return nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.tp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tracing.Shutdown(ctx, a.tp, a.logger)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// events are optional; a nil interface keeps the service from publishing
	var publisher ports.EventPublisher
	if a.mq != nil {
		publisher = a.mq
	}

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	if !jwtService.Enabled() {
		a.logger.Warn("SERVICE_JWT_SECRET is empty, mutating routes are unauthenticated")
	}
	userService := services.NewUserService(a.userRepo, publisher, a.mCounter, a.cfg.App.MinAge)

	// controllers
	rest.NewUserController(a.router, userService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			a.logger.Warn("health check: database unreachable", zap.Error(err))
			c.Status(http.StatusServiceUnavailable)
			return
		}
	}
	c.Status(http.StatusOK)
}

func (a *App) Logger() *zap.Logger { return a.logger }

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/ezstore-dev/go-backend/internal/cfg"
	v1Http "github.com/ezstore-dev/go-backend/internal/delivery/v1/http"
	"github.com/ezstore-dev/go-backend/internal/infrastructure/kafka"
	"github.com/ezstore-dev/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/ezstore-dev/go-backend/internal/repository/pgdb/converter"
	"github.com/ezstore-dev/go-backend/internal/repository/redis"
	redisConv "github.com/ezstore-dev/go-backend/internal/repository/redis/converter"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/clients"
	"github.com/ezstore-dev/go-backend/pkg/closer"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/ezstore-dev/go-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает все слои приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(5 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("Postgres pool closed")
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	prConv := pgdbConv.NewProductConverterImpl()
	cartConv := pgdbConv.NewCartConverterImpl()
	userConv := pgdbConv.NewUserConverterImpl()
	reviewConv := pgdbConv.NewReviewConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewProductConverterImpl()

	cartRepo := pgdb.NewCartRepo(db.Pool, cartConv)
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	userRepo := pgdb.NewUserRepo(db.Pool, userConv)
	reviewRepo := pgdb.NewReviewRepo(db.Pool, reviewConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)
	sessionRepo := redis.NewSessionRepo(redisClient, cfg.Auth)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	cartUC := usecase.NewCartUC(cartRepo, productRepo, outboxRepo, db.Pool, cacheRepo, log)
	productUC := usecase.NewProductUC(productRepo, cacheRepo, log)
	userUC := usecase.NewUserUC(userRepo, sessionRepo, log)
	reviewUC := usecase.NewReviewUC(reviewRepo, productRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cartUC, productUC, userUC, reviewUC, cfg.Auth)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		closer:  cl,
		httpSrv: httpSrv,
		worker:  worker,
	}, nil
}

func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)
	a.closer.Add(func(ctx context.Context) error {
		workerCancel()
		a.worker.Stop()
		a.logger.Infof("Outbox worker stopped")
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

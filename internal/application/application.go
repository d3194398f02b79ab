package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"storefront/internal/config"
	"storefront/internal/domain/service/catalog"
	"storefront/internal/domain/service/order"
	"storefront/internal/domain/service/review"
	"storefront/internal/infrastructure/auth"
	"storefront/internal/infrastructure/cache"
	"storefront/internal/infrastructure/persistence"
	"storefront/internal/jobs"
	"storefront/internal/server"
	"storefront/internal/worker"
	"storefront/pkg/application/connectors"
	"storefront/pkg/application/modules"
	"storefront/pkg/contextx"
	"storefront/pkg/dbx"
	"storefront/pkg/httpx"
	"storefront/pkg/logx"
	"storefront/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Run(ctx context.Context) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.Ping: %w", err)
	}

	if err := dbx.MigrateFromFile(ctx, db, cfg.Postgres.MigrationsFile); err != nil {
		return fmt.Errorf("dbx.MigrateFromFile: %w", err)
	}

	// 3. Redis
	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// 4. Repositories
	productRepo := persistence.NewProductRepository(db)
	reviewRepo := persistence.NewReviewRepository(db)
	customerRepo := persistence.NewCustomerRepository(db)
	salesRepo := persistence.NewSalesRepository(db)

	// 5. Background jobs
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	enqueuer := jobs.NewEnqueuer(asynqClient)

	// 6. Services
	listCache := cache.NewLists(redisClient, cfg.Redis.ListCacheTTL)

	catalogService := catalog.NewService(productRepo, salesRepo, reviewRepo).
		WithListCache(listCache).
		WithWindow(cfg.Catalog.TopSellersWindow)

	reviewService := review.NewService(reviewRepo, enqueuer)

	orderService := order.NewService(productRepo, salesRepo)

	// 7. Auth
	masker := logx.NewSensitiveDataMasker()

	outboundClient := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(masker),
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
		),
	}

	googleProvider := auth.NewGoogleProvider(
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleClientSecret,
		cfg.Auth.GoogleRedirectURL,
		outboundClient,
	)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	// 8. HTTP server
	srv := server.NewServer(
		server.NewCatalogServer(catalogService),
		server.NewReviewServer(reviewService, productRepo, customerRepo),
		server.NewOrderServer(orderService),
		server.NewAuthServer(googleProvider, tokenManager, customerRepo),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Metrics,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router, middlewarex.Auth(tokenManager))

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListenAddress}.Run(ctx, g)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 10},
		modules.AsynqHandler{
			Pattern: jobs.TypeRefreshReviewSummary,
			Handle:  jobs.HandleRefreshSummary(reviewRepo),
		},
	)

	// 9. Workers
	refresher := worker.NewTopSellersRefresher(catalogService).
		WithInterval(cfg.Catalog.TopSellersRefreshInterval).
		WithPageLimits(12, 24)

	g.Go(func() error {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("refresher.Run: %w", err)
		}
		return nil
	})

	logger(ctx).Info("application started",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
		slog.String("address", cfg.HTTP.ListenAddress),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}

// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"revenda-service/internal/config"
	"revenda-service/internal/db"
	pricingHandler "revenda-service/internal/handlers/pricing"
	settlementHandler "revenda-service/internal/handlers/settlement"
	"revenda-service/internal/middleware"
	"revenda-service/internal/pkg/jwt"
	"revenda-service/internal/pkg/lock"
	"revenda-service/internal/pkg/metrics"
	"revenda-service/internal/repository/postgres"
	commissionsvc "revenda-service/internal/service/commission"
	pricingsvc "revenda-service/internal/service/pricing"
	settlementsvc "revenda-service/internal/service/settlement"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	return &Server{cfg: cfg, engine: gin.New()}
}

// Components are the settlement services built over Postgres. Shared by the
// HTTP server and the operator CLI.
type Components struct {
	DB          *postgres.DB
	Resolver    *pricingsvc.Resolver
	Coordinator *settlementsvc.Coordinator
}

// BuildComponents wires repositories and services. locker may be nil.
func BuildComponents(cfg config.AppConfig, pool *pgxpool.Pool, locker lock.Locker, logger *zap.Logger) *Components {
	dbWrapper := postgres.NewDB(pool)

	// ----- Repositories -----
	subscriptionRepo := postgres.NewSubscriptionRepository(dbWrapper)
	optionRepo := postgres.NewRechargeOptionRepository(dbWrapper)
	bandRepo := postgres.NewPricingBandRepository(dbWrapper)
	commissionRepo := postgres.NewCommissionRepository(dbWrapper)
	ledgerRepo := postgres.NewLedgerRepository(dbWrapper)
	resellerRepo := postgres.NewResellerRepository(dbWrapper)
	runRepo := postgres.NewSettlementRunRepository(dbWrapper)

	// ----- Services -----
	resolver := pricingsvc.NewResolver(bandRepo, logger)
	commissions := commissionsvc.NewLedger(commissionRepo, logger)

	opts := []settlementsvc.Option{settlementsvc.WithLocker(locker)}
	if cfg.Atomic {
		opts = append(opts, settlementsvc.WithTransactor(dbWrapper))
	}

	coordinator := settlementsvc.NewCoordinator(
		subscriptionRepo,
		optionRepo,
		ledgerRepo,
		resellerRepo,
		runRepo,
		resolver,
		commissions,
		logger,
		opts...,
	)

	return &Components{
		DB:          dbWrapper,
		Resolver:    resolver,
		Coordinator: coordinator,
	}
}

func (s *Server) Start() error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(db.PostgresConfig{URL: s.cfg.DatabaseURL, MaxConns: s.cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	logger.Info("connected to postgres")

	// ----- Redis (optional) -----
	var locker lock.Locker = lock.NopLocker{}
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			return err
		}
		s.redis = redisClient
		locker = lock.NewRedisLocker(redisClient, s.cfg.LockTTL)
		logger.Info("settlement lock enabled", zap.String("redis_addr", s.cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, settlements are not serialised per subject")
	}

	// ----- JWT -----
	verifier, err := jwt.LoadVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	// ----- Metrics -----
	metrics.Init()

	// ----- Services -----
	components := BuildComponents(s.cfg, pool, locker, logger)
	logger.Info("settlement coordinator ready", zap.Bool("atomic", s.cfg.Atomic))

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		SettlementHandler: settlementHandler.NewSettlementHandler(components.Coordinator),
		PricingHandler:    pricingHandler.NewPricingHandler(components.Resolver, components.Coordinator),
		AuthMiddleware:    middleware.NewAuthMiddleware(verifier),
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight settlements and
// closes the pools.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

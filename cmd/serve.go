package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"SONJUTOKTOK_BACK-END/internal/auth"
	"SONJUTOKTOK_BACK-END/internal/config"
	"SONJUTOKTOK_BACK-END/internal/logger"
	"SONJUTOKTOK_BACK-END/internal/middleware"
	"SONJUTOKTOK_BACK-END/internal/routes"
	"SONJUTOKTOK_BACK-END/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	log := logger.New(logger.Config{
		Env:         cfg.Env,
		Level:       cfg.Log.Level,
		ServiceName: "sonjutoktok-api",
		Version:     cfg.Version,
	})
	zap.ReplaceGlobals(log)
	return log
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg)
	defer log.Sync()

	metrics, err := middleware.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	profiles, closeStore, err := openStore(ctx, cfg, log, metrics)
	if err != nil {
		return err
	}
	defer closeStore()

	verifier, err := newVerifier(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   log,
			Store:    profiles,
			Verifier: verifier,
			Metrics:  metrics,
		}),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("auth_mode", cfg.Auth.Mode), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("Server stopped")
		return nil
	})
	return g.Wait()
}

// openStore builds the configured profile store and returns its cleanup function
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger, metrics *middleware.Metrics) (store.ProfileStore, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn("using in-memory profile store; data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	pg := store.NewPostgresStore(pool)
	if cfg.Database.AutoMigrate {
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	if err := metrics.RegisterPool(pool); err != nil {
		log.Warn("pool metrics disabled", zap.Error(err))
	}
	return pg, pool.Close, nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	// simple protocol is required when going through PgBouncer in transaction mode
	if cfg.Database.SimpleProtocol {
		pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = "sonjutoktok-backend"
	if cfg.Database.StatementTimeout > 0 {
		pcfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprint(cfg.Database.StatementTimeout.Milliseconds())
	}
	pcfg.MaxConns = cfg.Database.MaxConns
	pcfg.MinConns = cfg.Database.MinConns
	pcfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func newVerifier(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.Verifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeDev:
		log.Warn("AUTH_MODE=dev: accepting locally signed tokens", zap.String("issuer", cfg.Auth.Dev.Issuer))
		v, err := auth.NewDevVerifier(cfg.Auth.Dev)
		if err != nil {
			return nil, fmt.Errorf("dev verifier: %w", err)
		}
		return v, nil
	default:
		v, err := auth.NewCognitoVerifier(ctx, cfg.Auth.Cognito)
		if err != nil {
			return nil, fmt.Errorf("cognito verifier: %w", err)
		}
		warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := v.Warm(warmCtx); err != nil {
			// keys are fetched again on the first request
			log.Warn("could not prefetch Cognito keys", zap.Error(err))
		}
		log.Info("verifying Cognito tokens", zap.String("issuer", cfg.Auth.Cognito.Issuer()))
		return v, nil
	}
}

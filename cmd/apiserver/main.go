package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rutamundo/backend/pkg/api"
	"github.com/rutamundo/backend/pkg/audit"
	"github.com/rutamundo/backend/pkg/auth"
	"github.com/rutamundo/backend/pkg/config"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/middleware"
	"github.com/rutamundo/backend/pkg/observability"
	"github.com/rutamundo/backend/pkg/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithFields(map[string]interface{}{
		"port":        cfg.Server.Port,
		"health_port": cfg.Server.HealthPort,
		"db_driver":   cfg.Database.Driver,
	}).Info("starting rutamundo backend")

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx, db); err != nil {
		return err
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	auditor, err := audit.NewDBLogger(db, logger)
	if err != nil {
		return err
	}

	users := store.NewUsers(db)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec := auth.NewTokenCodec(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)
	authenticator := auth.NewCredentialAuthenticator(store.NewCredentialStore(users), hasher, codec)
	admission := middleware.NewAuthenticator(codec, logger, metrics)

	server := api.NewServer(api.Deps{
		Users:         users,
		Trips:         store.NewTrips(db),
		News:          store.NewNews(db),
		Contacts:      store.NewContacts(db),
		Hasher:        hasher,
		Authenticator: authenticator,
		Admission:     admission,
		Logger:        logger,
		Metrics:       metrics,
		Auditor:       auditor,
	})

	var apiHandler http.Handler = server
	apiHandler = middleware.RequestID(apiHandler)
	apiHandler = httputil.LoggingMiddleware(logger)(apiHandler)
	apiHandler = httputil.CORSMiddleware(cfg.Server.CORSOrigins)(apiHandler)
	apiHandler = httputil.RecoveryMiddleware(logger)(apiHandler)

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      apiHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthServer := newHealthServer(cfg, db, metrics)

	go func() {
		defer observability.RecoverPanic(logger, "api server")
		logger.Infof("API server listening on %s", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("API server failed")
		}
	}()
	go func() {
		defer observability.RecoverPanic(logger, "health server")
		logger.Infof("health server listening on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("health server failed")
		}
	}()

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, apiServer, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return db.Close()
	})
	return shutdown.WaitForShutdown()
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func newHealthServer(cfg *config.Config, db *sql.DB, metrics *observability.Metrics) *http.Server {
	checker := observability.NewHealthChecker(db)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", checker.Liveness)
	mux.HandleFunc("/readyz", checker.Readiness)
	if metrics != nil {
		mux.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.CollectDBStats(db)
			metrics.Handler().ServeHTTP(w, r)
		}))
	}

	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

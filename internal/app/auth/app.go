// Package auth собирает сервис авторизации: HTTP API, gRPC-сервер и их зависимости.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/auth-rbac/internal/config"
	"github.com/magabrotheeeer/auth-rbac/internal/events"
	"github.com/magabrotheeeer/auth-rbac/internal/grpc/authpb"
	"github.com/magabrotheeeer/auth-rbac/internal/grpc/server"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/password"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/auth-rbac/internal/lib/sl"
	"github.com/magabrotheeeer/auth-rbac/internal/metrics"
	"github.com/magabrotheeeer/auth-rbac/internal/migrations"
	services "github.com/magabrotheeeer/auth-rbac/internal/services/auth"
	"github.com/magabrotheeeer/auth-rbac/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	httpServer   *http.Server
	grpcServer   *grpc.Server
	grpcListener net.Listener
	logger       *slog.Logger
	db           *repository.Storage
	amqpConn     *amqp.Connection
	amqpCh       *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"
	app := &App{logger: logger}

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.db = db

	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)))

	if err := repository.CheckDatabaseReady(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	opts := []services.Option{services.WithMetrics(m)}
	if cfg.RabbitMQ.URL != "" {
		publisher, err := app.setupPublisher(cfg.RabbitMQ)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, services.WithPublisher(publisher))
	} else {
		logger.Info("rabbitmq url is empty, registration events are disabled")
	}

	authService := services.NewAuthService(
		logger,
		db,
		jwt.NewJWTMaker(cfg.SecretKey),
		password.NewHasher(cfg.BcryptCost, logger),
		services.TokenTTL{Access: cfg.AccessTokenTTL, Refresh: cfg.RefreshTokenTTL},
		opts...,
	)

	router := NewRouter(RouterDeps{
		Log:          logger,
		Auth:         authService,
		Gate:         authService,
		DB:           db,
		Metrics:      m,
		Gatherer:     registry,
		LoginLimiter: rate.NewLimiter(rate.Limit(cfg.LoginRPS), cfg.LoginBurst),
	})

	app.httpServer = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.AddressGRPC != "" {
		lis, err := net.Listen("tcp", cfg.AddressGRPC)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.grpcListener = lis
		app.grpcServer = grpc.NewServer()
		authpb.RegisterAuthServiceServer(app.grpcServer, server.NewAuthServer(authService, logger))
	}

	return app, nil
}

func (a *App) setupPublisher(cfg config.RabbitMQ) (*events.AMQPPublisher, error) {
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	a.amqpConn = conn

	ch, err := rabbitmq.SetupExchange(conn, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	a.amqpCh = ch

	return events.NewAMQPPublisher(ch, cfg.Exchange, a.logger), nil
}

// Run запускает HTTP и gRPC серверы и блокируется до отмены ctx или ошибки одного из них.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.httpServer.Addr))
		err := a.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	if a.grpcServer != nil {
		go func() {
			a.logger.Info("gRPC server listening on", slog.String("address", a.grpcListener.Addr().String()))
			errCh <- a.grpcServer.Serve(a.grpcListener)
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	a.logger.Info("shutting down gracefully")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("failed to shutdown HTTP server", sl.Err(err))
		runErr = errors.Join(runErr, err)
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.close()
	return runErr
}

func (a *App) close() {
	if a.amqpCh != nil {
		if err := a.amqpCh.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}

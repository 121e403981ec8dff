package cli

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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shoppay/internal/cache"
	"github.com/nikolayk812/shoppay/internal/config"
	"github.com/nikolayk812/shoppay/internal/db"
	"github.com/nikolayk812/shoppay/internal/httpapi"
	"github.com/nikolayk812/shoppay/internal/notify"
	"github.com/nikolayk812/shoppay/internal/orders"
	"github.com/nikolayk812/shoppay/internal/payment"
	"github.com/nikolayk812/shoppay/internal/port"
	"github.com/nikolayk812/shoppay/internal/repository"
	"github.com/nikolayk812/shoppay/internal/template"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, os.Stdout)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(cfg.Database.URL); err != nil {
			return fmt.Errorf("db.Migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	orderRepo, err := repository.NewOrder(pool)
	if err != nil {
		return fmt.Errorf("repository.NewOrder: %w", err)
	}

	events, closeEvents, err := newEventCache(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	if cfg.Razorpay.KeySecret == "" || cfg.Razorpay.WebhookSecret == "" {
		logger.Warn("razorpay secrets are not fully configured, affected requests will fail")
	}

	payments, err := payment.NewService(orderRepo, events, payment.Secrets{
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
	}, logger)
	if err != nil {
		return fmt.Errorf("payment.NewService: %w", err)
	}

	sender, closeSender, err := newSender(cfg.Notify, logger)
	if err != nil {
		return err
	}
	defer closeSender()

	dispatcher, err := notify.NewDispatcher(sender, logger, notify.Options{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
	})
	if err != nil {
		return fmt.Errorf("notify.NewDispatcher: %w", err)
	}
	// drains queued notifications after the server stopped accepting requests
	defer dispatcher.Close()

	orderService, err := orders.NewService(orderRepo, dispatcher, logger)
	if err != nil {
		return fmt.Errorf("orders.NewService: %w", err)
	}

	router, err := httpapi.NewRouter(httpapi.RouterConfig{
		Payments:       payments,
		Orders:         orderService,
		Logger:         logger,
		AdminJWTSecret: cfg.Admin.JWTSecret,
		TrustProxy:     cfg.HTTP.TrustProxy,
		RateLimit:      cfg.HTTP.RateLimit,
		RateBurst:      cfg.HTTP.RateBurst,
		RequestTimeout: cfg.HTTP.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewRouter: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

// newEventCache returns a Redis backed cache when an address is configured,
// the in-process cache otherwise.
func newEventCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (port.EventCache, func(), error) {
	if cfg.Addr == "" {
		logger.Info("redis is not configured, using in-memory webhook event cache")
		return cache.NewMemoryCache(cfg.EventTTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	c, err := cache.NewRedisCache(client, cfg.EventTTL)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("cache.NewRedisCache: %w", err)
	}

	return c, func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}, nil
}

func newSender(cfg config.NotifyConfig, logger *slog.Logger) (notify.Sender, func(), error) {
	switch cfg.Driver {
	case config.NotifyDriverEmail:
		engine, err := template.NewEngine()
		if err != nil {
			return nil, nil, fmt.Errorf("template.NewEngine: %w", err)
		}

		sender, err := notify.NewEmailSender(notify.EmailConfig{
			BaseURL: cfg.EmailAPIURL,
			APIKey:  cfg.EmailAPIKey,
			From:    cfg.EmailFrom,
		}, engine, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewEmailSender: %w", err)
		}
		return sender, func() {}, nil

	case config.NotifyDriverKafka:
		sender, err := notify.NewKafkaSender(cfg.KafkaTopic, cfg.KafkaBrokers...)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewKafkaSender: %w", err)
		}
		return sender, func() {
			if err := sender.Close(); err != nil {
				logger.Warn("failed to close kafka writer", "error", err)
			}
		}, nil

	default:
		return notify.NewLogSender(logger), func() {}, nil
	}
}

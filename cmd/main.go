package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"golden-fork/internal/config"
	"golden-fork/internal/database"
	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/messaging"
	"golden-fork/internal/services/api"
	"golden-fork/internal/services/checkout"
	"golden-fork/internal/services/coupon"
	"golden-fork/internal/services/notification"
	"golden-fork/internal/services/orders"
	"golden-fork/internal/services/pricing"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (order-service, notification-subscriber)")
		port       = flag.Int("port", 0, "HTTP port (defaults to server.port from config)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
		configPath = flag.String("config", "config.yaml", "Path to the configuration file")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	defer log.Sync()
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "order-service":
		err = runOrderService(ctx, cfg, log)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService serves the ordering API until ctx is cancelled
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	fee, err := cfg.DeliveryFee()
	if err != nil {
		return err
	}
	freeAbove, err := cfg.FreeDeliveryAbove()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	feePolicy := pricing.FeePolicy{Fee: fee, FreeAbove: freeAbove}
	coupons := coupon.DefaultCatalog()

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	handler := api.NewHandler(api.Deps{
		Sessions: kvstore.NewSessions(kvstore.NewPostgres(db)),
		Users:    db,
		Orders:   orders.NewService(db, db, log),
		Checkout: checkout.NewService(db, publisher, checkout.Options{
			Coupons:    coupons,
			FeePolicy:  feePolicy,
			BranchName: cfg.Branch.Name,
			Location:   loc,
		}, log),
		Coupons:        coupons,
		FeePolicy:      feePolicy,
		CurrencySymbol: cfg.Pricing.CurrencySymbol,
		Location:       loc,
		RequestTimeout: cfg.RequestTimeout(),
		Health:         db,
	}, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("service_started", fmt.Sprintf("Order Service started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port":   cfg.Server.Port,
			"branch": cfg.Branch.Name,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("graceful_shutdown", "Shutting down HTTP server", requestID, nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// runNotificationSubscriber prints placed orders until ctx is cancelled
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	return notification.NewSubscriber(consumer, cfg.Pricing.CurrencySymbol, log).Start(ctx)
}

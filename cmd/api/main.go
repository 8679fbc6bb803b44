package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"soldout-pos/internal/backup"
	"soldout-pos/internal/config"
	"soldout-pos/internal/db"
	"soldout-pos/internal/httpserver"
	"soldout-pos/internal/migrate"
	cartrepo "soldout-pos/internal/repository/cart"
	categoryrepo "soldout-pos/internal/repository/category"
	channelrepo "soldout-pos/internal/repository/channel"
	orderrepo "soldout-pos/internal/repository/order"
	productrepo "soldout-pos/internal/repository/product"
	"soldout-pos/internal/seed"
	cartsvc "soldout-pos/internal/service/cart"
	catalogsvc "soldout-pos/internal/service/catalog"
	categorysvc "soldout-pos/internal/service/category"
	channelsvc "soldout-pos/internal/service/channel"
	checkoutsvc "soldout-pos/internal/service/checkout"
	ordersvc "soldout-pos/internal/service/order"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	// Schema first, then the fixed channel set. Both are idempotent, so a
	// restart against an up-to-date store is a no-op.
	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	if err := seed.EnsureDefaultChannels(ctx, dbpool); err != nil {
		logger.Fatalf("seed channels: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	channelRepo := channelrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, logger)
	if err := cartService.Load(ctx); err != nil {
		logger.Fatalf("restore cart: %v", err)
	}
	catalogService := catalogsvc.New(productRepo)
	categoryService := categorysvc.New(categoryRepo)
	channelService := channelsvc.New(channelRepo)
	orderService := ordersvc.New(orderRepo)
	checkoutService := checkoutsvc.New(cartService, productRepo, channelRepo, orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		CategorySvc: categoryService,
		ChannelSvc:  channelService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		BackupSource: backup.Source{
			Products: productRepo,
			Orders:   orderRepo,
			Channels: channelRepo,
		},
		Restorer: backup.NewPostgresRestorer(dbpool),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

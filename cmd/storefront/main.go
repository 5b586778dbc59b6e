package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/clients"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/events"
	"github.com/tribalarts/storefront-service/internal/handlers"
	"github.com/tribalarts/storefront-service/internal/repository"
	"github.com/tribalarts/storefront-service/internal/server"
	"github.com/tribalarts/storefront-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	log.WithField("port", cfg.Server.Port).Info("Starting storefront-service")

	db, err := initDatabase(cfg)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	orderRepo := repository.NewPostgresOrderRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)
	orderCache := repository.NewRedisOrderCache(redisClient, cfg.Redis)
	cartStore := repository.NewRedisCartStore(redisClient)

	gateway := clients.NewRazorpayGateway(cfg.Gateway)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka)
	defer eventPublisher.Close()

	checkoutService := service.NewCheckoutService(
		gateway, orderRepo, productRepo, cartStore, orderCache, eventPublisher, cfg,
	)
	orderService := service.NewOrderService(orderRepo, orderCache, eventPublisher, cfg)
	accountService := service.NewAccountService(userRepo, cfg)
	contactService := service.NewContactService(messageRepo)
	dashboardService := service.NewDashboardService(orderRepo, userRepo, messageRepo)

	h := handlers.NewHandlers(
		checkoutService, orderService, accountService, contactService,
		dashboardService, productRepo, cartStore, cfg,
	)

	srv := server.New(h, cfg)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("error", err.Error()).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	}).Info("Database connected")

	return db, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/roomledger/roomledger/internal/api/v1"
	"github.com/roomledger/roomledger/internal/auth"
	"github.com/roomledger/roomledger/internal/cache"
	"github.com/roomledger/roomledger/internal/config"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/repository"
	gormrepo "github.com/roomledger/roomledger/internal/repository/gorm"
	"github.com/roomledger/roomledger/internal/rest"
	"github.com/roomledger/roomledger/internal/service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalw("failed to create logger", "error", err)
	}

	client, err := gormrepo.NewClient(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	repos := repository.NewRepositories(client)
	provider := auth.NewProvider(cfg)

	params := service.ServiceParams{
		Logger:          log,
		Config:          cfg,
		DB:              client,
		Cache:           cache.NewInMemoryCache(cfg, log),
		AuthProvider:    provider,
		RoomRepo:        repos.Room,
		ReadingRepo:     repos.Reading,
		BillRepo:        repos.Bill,
		ResidentRepo:    repos.Resident,
		MaintenanceRepo: repos.Maintenance,
		ProductRepo:     repos.Product,
		SaleRepo:        repos.Sale,
		UserRepo:        repos.User,
	}

	handlers := rest.Handlers{
		Billing:     v1.NewBillingHandler(service.NewBillingService(params), log),
		Room:        v1.NewRoomHandler(service.NewRoomService(params), log),
		Reading:     v1.NewReadingHandler(service.NewReadingService(params), log),
		Resident:    v1.NewResidentHandler(service.NewResidentService(params), log),
		Maintenance: v1.NewMaintenanceHandler(service.NewMaintenanceService(params), log),
		Shop:        v1.NewShopHandler(service.NewShopService(params), log),
		User:        v1.NewUserHandler(service.NewUserService(params), log),
	}

	router := rest.NewRouter(cfg, log, provider, repos.User, handlers)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("starting server", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}

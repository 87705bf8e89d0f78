package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gescom/internal/cache"
	"gescom/internal/config"
	"gescom/internal/database"
	"gescom/internal/handlers"
	"gescom/internal/middleware"
	"gescom/internal/migrations"
	"gescom/internal/repository"
	"gescom/internal/services"
	"gescom/pkg/remote"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	if err := migrations.RunMigrations(db, cfg.BcryptCost, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is an optional fast path; the application runs fully without it.
	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.Initialize(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
			cacheClient = nil
		}
	}

	remoteClient := remote.NewClient(cfg.RemoteAPIURL, time.Duration(cfg.RemoteTimeoutSec)*time.Second)
	tokenSource := services.NewTokenSource()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	professionRepo := repository.NewProfessionRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	syncRepo := repository.NewSyncRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	entrepriseRepo := repository.NewEntrepriseRepository(db)

	// Services
	activityService := services.NewActivityService(activityRepo)
	syncService := services.NewSyncService(db, syncRepo, entrepriseRepo, remoteClient, tokenSource, log)
	authService := services.NewAuthService(
		userRepo,
		tokenRepo,
		remoteClient,
		cacheClient,
		tokenSource,
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour,
		cfg.BcryptCost,
		log,
	)
	userService := services.NewUserService(db, userRepo, professionRepo, leaveRepo, activityService, syncService, cfg.BcryptCost)
	professionService := services.NewProfessionService(db, professionRepo, activityService, syncService)
	leaveService := services.NewLeaveService(db, leaveRepo, userRepo, activityService, syncService)
	clientService := services.NewClientService(db, clientRepo, syncService)
	archiveTTL := time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour
	productService := services.NewProductService(db, productRepo, activityRepo, activityService, syncService, archiveTTL)
	transactionService := services.NewTransactionService(db, transactionRepo, productRepo, activityService, syncService)
	orderService := services.NewOrderService(db, orderRepo, invoiceRepo, clientRepo, productRepo, transactionService, activityService, syncService)
	invoiceService := services.NewInvoiceService(db, invoiceRepo, activityService, syncService, time.Now)
	financeService := services.NewFinanceService(transactionRepo, cacheClient, time.Now)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(userService, professionService, leaveService, activityService)
	clientHandler := handlers.NewClientHandler(clientService)
	productHandler := handlers.NewProductHandler(productService, transactionService)
	orderHandler := handlers.NewOrderHandler(orderService, invoiceService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	syncHandler := handlers.NewSyncHandler(syncService)

	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/password-reset/request", authHandler.RequestPasswordReset)
		api.POST("/auth/password-reset/confirm", authHandler.ResetPassword)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/auth/logout", authHandler.Logout)

			authed.POST("/users", staffHandler.Register)
			authed.GET("/users/personnel", staffHandler.ListPersonnel)
			authed.GET("/users/:id", staffHandler.GetUser)
			authed.GET("/users/:id/activites", staffHandler.UserActivities)
			authed.GET("/users/:id/conges", staffHandler.UserLeaves)

			authed.GET("/professions", staffHandler.ListProfessions)
			authed.POST("/professions", staffHandler.CreateProfession)
			authed.PUT("/professions/:id", staffHandler.UpdateProfession)
			authed.DELETE("/professions/:id", staffHandler.DeleteProfession)

			authed.POST("/conges", staffHandler.AddLeave)
			authed.DELETE("/conges/:id", staffHandler.CancelLeave)

			authed.GET("/clients", clientHandler.List)
			authed.GET("/clients/:id", clientHandler.Get)
			authed.POST("/clients", clientHandler.Create)
			authed.PUT("/clients/:id", clientHandler.Update)
			authed.DELETE("/clients/:id", clientHandler.Delete)

			authed.GET("/produits", productHandler.List)
			authed.GET("/produits/:id", productHandler.Get)
			authed.POST("/produits", productHandler.Create)
			authed.PUT("/produits/:id", productHandler.Update)
			authed.DELETE("/produits/:id", productHandler.Delete)
			authed.GET("/produits/:id/transactions", productHandler.Transactions)
			authed.POST("/produits/:id/transactions", productHandler.AddTransaction)

			authed.GET("/commandes", orderHandler.List)
			authed.GET("/commandes/:id", orderHandler.Get)
			authed.POST("/commandes", orderHandler.Create)
			authed.POST("/commandes/:id/valider", orderHandler.Validate)
			authed.GET("/factures", orderHandler.ListInvoices)
			authed.GET("/factures/:id", orderHandler.GetInvoice)
			authed.POST("/factures/:id/payer", orderHandler.PayInvoice)

			authed.GET("/finance/bilan/:periode", financeHandler.Bilan)

			authed.POST("/sync/run", syncHandler.Run)
			authed.POST("/sync/pull", syncHandler.Pull)
			authed.GET("/sync/history", syncHandler.History)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go syncService.Run(ctx, time.Duration(cfg.SyncIntervalSec)*time.Second)
	go housekeeping(ctx, tokenRepo, activityRepo, log)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// housekeeping purges expired blacklist rows and archives once an hour.
func housekeeping(ctx context.Context, tokenRepo repository.TokenRepository, activityRepo repository.ActivityRepository, log zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tokenRepo.PurgeExpired(time.Now()); err != nil {
				log.Warn().Err(err).Msg("failed to purge expired blacklist entries")
			}
			if err := activityRepo.PurgeExpiredArchives(time.Now()); err != nil {
				log.Warn().Err(err).Msg("failed to purge expired archives")
			}
		}
	}
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/minthuka/bookpos-api/internal/application/service"
	"github.com/minthuka/bookpos-api/internal/config"
	"github.com/minthuka/bookpos-api/internal/infrastructure/database"
	"github.com/minthuka/bookpos-api/internal/infrastructure/repository"
	"github.com/minthuka/bookpos-api/internal/presentation/http/handler"
	"github.com/minthuka/bookpos-api/internal/presentation/http/routes"
	"github.com/minthuka/bookpos-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data (POS sales category, admin account)
	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	uow := repository.NewUnitOfWork(db, logger)
	userRepo := repository.NewUserRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	tableRepo := repository.NewTableRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	saleService := service.NewSaleService(uow, saleRepo, catalogRepo, logger)
	tableService := service.NewTableService(uow, tableRepo, logger)
	menuService := service.NewMenuService(catalogRepo, logger)
	txnService := service.NewTransactionService(txnRepo, categoryRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	backupService := service.NewBackupService(cfg, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Sale:        handler.NewSaleHandler(saleService),
		Table:       handler.NewTableHandler(tableService),
		Menu:        handler.NewMenuHandler(menuService),
		Transaction: handler.NewTransactionHandler(txnService),
		User:        handler.NewUserHandler(userService),
		Backup:      handler.NewBackupHandler(backupService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minthuka/bookpos-api/internal/config"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	domainRepo "github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/internal/presentation/http/handler"
	"github.com/minthuka/bookpos-api/internal/presentation/http/middleware"
	"github.com/minthuka/bookpos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Sale        *handler.SaleHandler
	Table       *handler.TableHandler
	Menu        *handler.MenuHandler
	Transaction *handler.TransactionHandler
	User        *handler.UserHandler
	Backup      *handler.BackupHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerSaleRoutes(protected, h, deps)
	registerTableRoutes(protected, h)
	registerMenuRoutes(protected, h)
	registerTransactionRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerBackupRoutes(protected, h)
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.ListSales)
		// Order submission requires an idempotency key so a retried request
		// cannot open or append twice
		sales.POST("/orders", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.SubmitOrder)
		sales.GET("/:id", h.Sale.GetSale)
		sales.POST("/:id/pay", h.Sale.Pay)
		sales.POST("/:id/cancel", h.Sale.CancelSale)
		sales.POST("/:id/uncancel", h.Sale.UncancelSale)
		sales.POST("/:id/items/:itemId/cancel", h.Sale.CancelItem)
		sales.POST("/:id/items/:itemId/uncancel", h.Sale.UncancelItem)
	}
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers) {
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.ListTables)
		tables.GET("/:id", h.Table.GetTable)
		tables.POST("/:id/move", h.Table.MoveSale)
		tables.POST("/:id/clear", h.Table.ClearTable)

		admin := tables.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("", h.Table.CreateTable)
			admin.PUT("/:id", h.Table.UpdateTable)
			admin.DELETE("/:id", h.Table.DeleteTable)
		}
	}
}

func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/menu", h.Menu.GetMenuTree)

	menu := protected.Group("/menu")
	menu.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		menu.GET("/categories", h.Menu.ListCategories)
		menu.POST("/categories", h.Menu.CreateCategory)
		menu.PUT("/categories/:id", h.Menu.UpdateCategory)
		menu.DELETE("/categories/:id", h.Menu.DeleteCategory)

		menu.GET("/items", h.Menu.ListItems)
		menu.POST("/items", h.Menu.CreateItem)
		menu.PUT("/items/:id", h.Menu.UpdateItem)
		menu.DELETE("/items/:id", h.Menu.DeleteItem)

		menu.POST("/option-groups", h.Menu.CreateOptionGroup)
		menu.PUT("/option-groups/:id", h.Menu.UpdateOptionGroup)
		menu.DELETE("/option-groups/:id", h.Menu.DeleteOptionGroup)

		menu.POST("/options", h.Menu.CreateOption)
		menu.PUT("/options/:id", h.Menu.UpdateOption)
		menu.DELETE("/options/:id", h.Menu.DeleteOption)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.ListTransactions)
		transactions.POST("", h.Transaction.CreateTransaction)
		transactions.GET("/:id", h.Transaction.GetTransaction)
		transactions.PUT("/:id", h.Transaction.UpdateTransaction)
		transactions.DELETE("/:id", h.Transaction.DeleteTransaction)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Transaction.ListCategories)
		categories.POST("", h.Transaction.CreateCategory)
		categories.PUT("/:id", h.Transaction.UpdateCategory)
		categories.DELETE("/:id", h.Transaction.DeleteCategory)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.ListUsers)
		users.POST("", h.User.CreateUser)
		users.GET("/:id", h.User.GetUser)
		users.PUT("/:id", h.User.UpdateUser)
		users.DELETE("/:id", h.User.DeleteUser)
	}
}

func registerBackupRoutes(protected *gin.RouterGroup, h *Handlers) {
	backups := protected.Group("/backups")
	backups.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		backups.GET("", h.Backup.ListBackups)
		backups.POST("", h.Backup.CreateBackup)
		backups.DELETE("/:name", h.Backup.DeleteBackup)
	}
}

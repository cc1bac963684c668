package database

import (
	"fmt"
	"log"

	"github.com/minthuka/bookpos-api/internal/config"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// User entities
		&entity.User{},

		// Bookkeeping entities
		&entity.Category{},
		&entity.Transaction{},

		// Menu catalog entities
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.OptionGroup{},
		&entity.MenuOption{},

		// POS entities
		&entity.Table{},
		&entity.Sale{},
		&entity.SaleItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedDefaultData seeds the ledger category that POS income is booked
// against and, when configured, the initial admin user.
func SeedDefaultData(db *gorm.DB) error {
	var posCategory entity.Category
	if err := db.Where("name = ?", entity.POSSalesCategory).First(&posCategory).Error; err != nil {
		posCategory = entity.Category{
			Name: entity.POSSalesCategory,
			Type: enum.TransactionTypeIncome,
		}
		if err := db.Create(&posCategory).Error; err != nil {
			return fmt.Errorf("failed to seed %q category: %w", entity.POSSalesCategory, err)
		}
	}

	// Create the initial admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
			return nil
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if adminName == "" {
			adminName = "Admin"
		}
		admin := entity.User{
			Name:     adminName,
			Email:    adminEmail,
			Password: string(hashedPassword),
			Role:     entity.RoleAdmin,
			IsActive: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("Admin user created: %s", adminEmail)
	}

	return nil
}

// File: /database/database.go
package database

import (
	"fmt"
	"log/slog"
	"strings"

	"fleetexpense-api/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens a gorm connection for the given driver name
// (mysql, postgres or sqlite).
func Initialize(driver, databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql", "":
		dialector = mysql.Open(databaseURL)
	case "postgres":
		dialector = postgres.Open(databaseURL)
	case "sqlite":
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Group{},
		&models.Refueling{},
		&models.Service{},
		&models.Accessory{},
		&models.Tax{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addCustomIndexes(db)
	return nil
}

// addCustomIndexes adds the (group_id, date) indexes rollup queries filter on.
// Failures are logged only; some dialects reject IF NOT EXISTS.
func addCustomIndexes(db *gorm.DB) {
	for _, category := range models.ExpenseCategories {
		table := category.TableName()
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_group_date ON %s(group_id, date)", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			slog.Warn("Could not create index", "table", table, "error", err)
		}
	}
}

// SeedData creates the first admin account on an empty database. Nothing
// is seeded unless both email and password are given.
func SeedData(db *gorm.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		slog.Warn("Seed admin credentials not set, skipping seed")
		return nil
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		slog.Info("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin := models.User{
		ID:       uuid.New().String(),
		Name:     "Administrator",
		Email:    strings.ToLower(strings.TrimSpace(adminEmail)),
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	slog.Info("Database seeded with admin account", "email", admin.Email)
	return nil
}

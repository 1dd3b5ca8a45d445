// File: /database/memory.go
package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenInMemory returns a migrated SQLite database that lives for the life of
// the connection. The pool is pinned to one connection so every query sees
// the same database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := Initialize("sqlite", ":memory:", logger.Silent)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

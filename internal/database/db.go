package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect

	"wastenot/internal/models"
)

var DB *gorm.DB

// InitDB opens the database connection and migrates the schema. Supported
// drivers are "sqlite3" (dsn is a file path) and "postgres" (dsn is a
// connection string).
func InitDB(driver, dsn string) error {
	switch driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	var err error
	DB, err = gorm.Open(driver, dsn)
	if err != nil {
		return err
	}

	return migrate(DB)
}

// migrate creates and updates all required tables
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.WastageRecord{},
	).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

package main

import (
	"context" // Context for goose

	"money_tracker/internal/config" // Custom import path (Config)
	"money_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// MySQL holds the accounts and, with DOC_STORE=mysql, the documents too
	if cfg.UsesMySQL() {
		gormDB, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{})
		if err != nil {
			logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
		}
		if err := db.MigrateMySQL(gormDB, cfg.DocStore == config.StoreMySQL); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	}

	// Postgres document store uses goose migrations
	if cfg.DocStore == config.StorePostgres {
		ctx := context.Background()
		pg, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			logrus.Fatalf("failed to connect database: %v", err)
		}
		defer pg.Close()
		if err := db.MigratePostgres(ctx, pg); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	}
}

package db

import (
	"context"      // Context for goose
	"database/sql" // Plain connection pool for goose and the postgres store
	"fmt"          // Error wrapping

	"money_tracker/internal/db/migrations" // Embedded goose migrations
	"money_tracker/internal/domain"        // Importing domain models

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"      // Migration runner
	"github.com/sirupsen/logrus"       // Logging
	"gorm.io/gorm"                     // GORM ORM library
)

// gooseUp is swapped in tests
var gooseUp = goose.UpContext

// MigrateMySQL creates the auth and document tables through gorm
func MigrateMySQL(db *gorm.DB, withDocuments bool) error {
	models := []any{&domain.Account{}} // Provider accounts always live in MySQL
	if withDocuments {
		models = append(models, &domain.Profile{}, &domain.TrackerRecord{})
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("db.MigrateMySQL: %w", err)
	}
	logrus.WithField("tables", len(models)).Info("MySQL migration completed.")
	return nil
}

// OpenPostgres opens a pgx-backed *sql.DB and checks it is reachable
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db.OpenPostgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db.OpenPostgres: %w", err)
	}
	return conn, nil
}

// MigratePostgres applies the embedded goose migrations
func MigratePostgres(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("db.MigratePostgres: %w", err)
	}
	if err := gooseUp(ctx, conn, "."); err != nil {
		return fmt.Errorf("db.MigratePostgres: %w", err)
	}
	logrus.Info("PostgreSQL migration completed.")
	return nil
}

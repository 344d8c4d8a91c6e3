// Command migrate applies the SQL migrations in internal/migrations
// against the database named by DATABASE_URL. Only the postgres dialect
// is migrated this way; mysql and clickhouse deployments rely on the
// schema being created on first write.
package main

import (
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/configs"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := configs.AppLoad()
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Fatalf("Migrations support the postgres dialect only, got %q", cfg.DatabaseURL)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Goose: failed to set dialect: %v", err)
	}

	logger.Info("Running database migrations...")
	if err := goose.Up(db, "internal/migrations"); err != nil {
		logger.Fatalf("Goose migration failed: %v", err)
	}

	logger.Info("Migrations completed successfully")
}

// Package provision performs the privileged one-time database setup: the
// application database, an app role limited to what the scraper needs,
// and optionally the option_chain table derived from a reference CSV
// header. It runs with admin credentials and must never be part of the
// scrape path.
package provision

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// Config holds the admin connection and target settings, from environment
// variables.
type Config struct {
	AdminHost     string
	AdminPort     string
	AdminUser     string
	AdminPassword string

	DBName      string
	AppUser     string
	AppPassword string

	TableName     string
	CSVSchemaPath string
}

// LoadConfig reads provisioning settings from the environment. The second
// return value lists missing required variables; a non-empty list must
// abort the process before any connection is attempted.
func LoadConfig() (*Config, []string) {
	cfg := &Config{
		AdminHost:     os.Getenv("ADMIN_HOST"),
		AdminPort:     envDefault("ADMIN_PORT", "5432"),
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		AppUser:       envDefault("APP_USER", "app_user"),
		AppPassword:   envDefault("APP_PASSWORD", "StrongPassword!"),
		TableName:     envDefault("OPTION_CHAIN_TABLE", "option_chain"),
		CSVSchemaPath: os.Getenv("CSV_SCHEMA_PATH"),
	}

	var missing []string
	for _, req := range []struct{ name, value string }{
		{"ADMIN_HOST", cfg.AdminHost},
		{"ADMIN_USER", cfg.AdminUser},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
		{"DB_NAME", cfg.DBName},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}

	return cfg, missing
}

// Run ensures database, role, grants and (optionally) the table exist.
// Every step is idempotent so re-running after a partial failure is safe.
func Run(ctx context.Context, cfg *Config, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.Infof("Connecting to %s:%s as %s ...", cfg.AdminHost, cfg.AdminPort, cfg.AdminUser)
	admin, err := pgx.Connect(ctx, cfg.adminURL("postgres"))
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	defer admin.Close(ctx)

	if err := ensureDatabase(ctx, admin, cfg.DBName); err != nil {
		return err
	}
	logger.Infof("Database ensured: %s", cfg.DBName)

	if err := ensureRole(ctx, admin, cfg.AppUser, cfg.AppPassword); err != nil {
		return err
	}
	logger.Infof("User ensured: %s", cfg.AppUser)

	grant := fmt.Sprintf("GRANT CONNECT ON DATABASE %s TO %s",
		quoteIdent(cfg.DBName), quoteIdent(cfg.AppUser))
	if _, err := admin.Exec(ctx, grant); err != nil {
		return fmt.Errorf("grant connect: %w", err)
	}

	// Schema-level grants and the optional table live inside the target DB.
	target, err := pgx.Connect(ctx, cfg.adminURL(cfg.DBName))
	if err != nil {
		return fmt.Errorf("target db connection: %w", err)
	}
	defer target.Close(ctx)

	if err := grantSchema(ctx, target, cfg.AppUser); err != nil {
		return err
	}
	logger.Infof("Granted privileges on %s to %s", cfg.DBName, cfg.AppUser)

	if cfg.CSVSchemaPath == "" {
		logger.Info("No CSV_SCHEMA_PATH provided; skipping table creation (created on first write).")
		return nil
	}

	headers, err := columnsFromCSVHeader(cfg.CSVSchemaPath)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		logger.Warnf("No headers found in CSV %s; skipping table creation.", cfg.CSVSchemaPath)
		return nil
	}

	if err := ensureTable(ctx, target, cfg.TableName, headers, cfg.AppUser); err != nil {
		return err
	}
	logger.Infof("Table ensured: %s.%s (from CSV headers)", cfg.DBName, cfg.TableName)
	return nil
}

func (c *Config) adminURL(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(c.AdminUser), url.QueryEscape(c.AdminPassword),
		c.AdminHost, c.AdminPort, dbName)
}

func ensureDatabase(ctx context.Context, conn *pgx.Conn, name string) error {
	var one int
	err := conn.QueryRow(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", name).Scan(&one)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("check database: %w", err)
	}
	// CREATE DATABASE cannot be parameterized.
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+quoteIdent(name)); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

func ensureRole(ctx context.Context, conn *pgx.Conn, user, password string) error {
	var one int
	err := conn.QueryRow(ctx, "SELECT 1 FROM pg_roles WHERE rolname = $1", user).Scan(&one)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("check role: %w", err)
	}
	stmt := fmt.Sprintf("CREATE ROLE %s LOGIN PASSWORD %s", quoteIdent(user), quoteLiteral(password))
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// grantSchema gives the app role the Postgres equivalent of
// INSERT/SELECT/CREATE/ALTER: schema usage+create plus row access on
// current and future tables.
func grantSchema(ctx context.Context, conn *pgx.Conn, user string) error {
	role := quoteIdent(user)
	stmts := []string{
		"GRANT USAGE, CREATE ON SCHEMA public TO " + role,
		"GRANT SELECT, INSERT ON ALL TABLES IN SCHEMA public TO " + role,
		"ALTER DEFAULT PRIVILEGES IN SCHEMA public GRANT SELECT, INSERT ON TABLES TO " + role,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("grant schema privileges: %w", err)
		}
	}
	return nil
}

func ensureTable(ctx context.Context, conn *pgx.Conn, table string, headers []string, user string) error {
	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = quoteIdent(h) + " TEXT"
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdent(table), strings.Join(cols, ", "))
	if _, err := conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	grant := fmt.Sprintf("GRANT SELECT, INSERT ON %s TO %s", quoteIdent(table), quoteIdent(user))
	if _, err := conn.Exec(ctx, grant); err != nil {
		return fmt.Errorf("grant table privileges: %w", err)
	}
	return nil
}

// columnsFromCSVHeader reads the first row of the reference file.
func columnsFromCSVHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV schema file: %w", err)
	}
	defer file.Close()

	headers, err := csv.NewReader(file).Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	return headers, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

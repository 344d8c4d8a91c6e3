// Package storage provides database persistence for normalized option rows.
package storage

import (
	"fmt"
	"net/url"
	"strings"

	"gorm.io/driver/clickhouse"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openquant/nsechain/internal/models"
)

// OpenDB connects using a dialect-prefixed URL (the DATABASE_URL surface):
// postgres://..., mysql://... or clickhouse://...
func OpenDB(databaseURL string) (*gorm.DB, error) {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return nil, fmt.Errorf("database URL %q has no dialect prefix", databaseURL)
	}

	switch scheme {
	case "postgres", "postgresql":
		return gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	case "mysql":
		dsn, err := mysqlDSN(databaseURL)
		if err != nil {
			return nil, err
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "clickhouse":
		return gorm.Open(clickhouse.Open(databaseURL), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", scheme)
	}
}

// mysqlDSN converts a mysql:// URL into the go-sql-driver DSN form
// (user:pass@tcp(host:port)/dbname?...).
func mysqlDSN(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse mysql URL: %w", err)
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}
	dbName := strings.TrimPrefix(u.Path, "/")

	query := u.Query()
	if query.Get("parseTime") == "" {
		query.Set("parseTime", "true")
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, pass, host, dbName, query.Encode()), nil
}

// OptionStorage persists normalized option rows.
type OptionStorage interface {
	// EnsureSchema creates or migrates the option_chain table.
	EnsureSchema() error

	// CreateRows inserts a batch of rows in one transaction.
	CreateRows(rows []*models.OptionRow) error
}

type gormOptionStorage struct {
	db *gorm.DB
}

// NewGormOptionStorage creates an OptionStorage backed by gorm.
func NewGormOptionStorage(db *gorm.DB) OptionStorage {
	return &gormOptionStorage{db: db}
}

func (s *gormOptionStorage) EnsureSchema() error {
	return s.db.AutoMigrate(&models.OptionRow{})
}

func (s *gormOptionStorage) CreateRows(rows []*models.OptionRow) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(rows).Error
	})
}

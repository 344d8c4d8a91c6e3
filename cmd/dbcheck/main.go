// Command dbcheck verifies database connectivity end to end: it connects
// with DATABASE_URL, runs a liveness query, then performs a write/read
// round trip against the option_chain table. Useful after provisioning or
// a credentials rotation.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/configs"
	"github.com/openquant/nsechain/internal/models"
	"github.com/openquant/nsechain/internal/storage"
	"github.com/openquant/nsechain/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := configs.AppLoad()
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	db, err := storage.OpenDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect: %v", err)
	}

	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		logger.Fatalf("Liveness query failed: %v", err)
	}
	logger.Info("Connection OK")

	store := storage.NewGormOptionStorage(db)
	if err := store.EnsureSchema(); err != nil {
		logger.Fatalf("Schema check failed: %v", err)
	}
	logger.Info("Schema OK")

	now := utils.NowIST()
	probe := &models.OptionRow{
		Timestamp:  utils.FormatTimestamp(now),
		Symbol:     "DBCHECK.NSE.OPT.20990101.0.CALL",
		OptionType: "CALL",
		Expiry:     "2099-01-01",
		Underlying: "DBCHECK",
	}
	if err := store.CreateRows([]*models.OptionRow{probe}); err != nil {
		logger.Fatalf("Write probe failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.OptionRow{}).
		Where("symbol = ?", probe.Symbol).Count(&count).Error; err != nil {
		logger.Fatalf("Read probe failed: %v", err)
	}
	if count == 0 {
		logger.Fatal("Read probe found no rows")
	}

	if err := db.Where("symbol = ?", probe.Symbol).
		Delete(&models.OptionRow{}).Error; err != nil {
		logger.Warnf("Probe cleanup failed: %v", err)
	}

	logger.Info("Write/read round trip OK")
}

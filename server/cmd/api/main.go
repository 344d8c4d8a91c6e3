// Command api serves the read-only option-chain API over the scraper's
// database. With -migrate it applies pending migrations first.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"

	"github.com/openquant/nsechain/internal/market"
	"github.com/openquant/nsechain/internal/storage"
	"github.com/openquant/nsechain/server/config"
	"github.com/openquant/nsechain/server/internal/handler"
	"github.com/openquant/nsechain/server/internal/repository"
	"github.com/openquant/nsechain/server/internal/router"
	"github.com/openquant/nsechain/server/internal/service"
	"github.com/openquant/nsechain/utils"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before serving")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.DebugMode != "True" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateFlag {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get sql.DB: %v", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("Goose: failed to set dialect: %v", err)
		}
		log.Println("Running database migrations...")
		if err := goose.Up(sqlDB, "internal/migrations"); err != nil {
			log.Fatalf("Goose migration failed: %v", err)
		}
	}

	calendar, err := market.CalendarForYear(utils.NowIST().Year())
	if err != nil {
		log.Fatalf("Market calendar: %v", err)
	}

	optionRepo := repository.NewGormOptionRepository(db)
	optionService := service.NewOptionChainService(optionRepo, calendar)
	optionHandler := handler.NewOptionChainHandler(optionService)

	routerConfig := &router.Config{
		OptionChainHandler: optionHandler,
	}

	router := router.NewRouter(routerConfig)

	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// Command scrape runs one complete scrape: market-calendar gate, per-symbol
// option-chain fetch, normalization, and fan-out to the configured sinks
// (CSV always, database and Kafka when configured). It is designed to be
// invoked periodically by cron or a systemd timer.
//
// With -display it instead prints the nearest-expiry option-chain matrix
// for each symbol and exits, skipping the calendar gate and all sinks.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/configs"
	"github.com/openquant/nsechain/internal/display"
	"github.com/openquant/nsechain/internal/market"
	"github.com/openquant/nsechain/internal/nse"
	"github.com/openquant/nsechain/internal/scraper"
	"github.com/openquant/nsechain/internal/storage"
	"github.com/openquant/nsechain/internal/writer"
	"github.com/openquant/nsechain/utils"
)

func main() {
	displayFlag := flag.Bool("display", false, "Print the option-chain matrix instead of persisting")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := configs.AppLoad()

	clientCfg := nse.DefaultClientConfig()
	clientCfg.Retries = cfg.Scrape.Retries
	clientCfg.BackoffBase = float64(cfg.Scrape.BackoffBase)
	client := nse.NewClient(clientCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *displayFlag {
		if err := runDisplay(ctx, client, cfg.Symbols, logger); err != nil {
			logger.Fatalf("Display failed: %v", err)
		}
		return
	}

	calendar, err := market.CalendarForYear(utils.NowIST().Year())
	if err != nil {
		logger.Fatalf("Market calendar: %v", err)
	}

	sinks, cleanup, err := buildSinks(cfg, logger)
	if err != nil {
		logger.Fatalf("Sink setup: %v", err)
	}
	defer cleanup()

	runner := scraper.NewRunner(calendar, client, sinks, cfg.Symbols, cfg.Exchange, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Fatalf("Scrape run failed: %v", err)
	}
}

// buildSinks assembles the configured sinks in write order: CSV first,
// then database and Kafka when their settings are present.
func buildSinks(cfg *configs.AppConfig, logger *logrus.Logger) ([]scraper.Sink, func(), error) {
	csvSink, err := writer.NewCSVWriter(cfg.OutputDir, logger)
	if err != nil {
		return nil, nil, err
	}
	sinks := []scraper.Sink{csvSink}
	cleanup := func() {}

	if cfg.DatabaseURL != "" {
		db, err := storage.OpenDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, storage.NewDBSink(storage.NewGormOptionStorage(db)))
	}

	if cfg.Kafka.Broker != "" {
		sender := scraper.NewSender(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		sinks = append(sinks, sender)
		cleanup = func() {
			if err := sender.Close(); err != nil {
				logger.Warnf("Closing kafka writer: %v", err)
			}
		}
	}

	return sinks, cleanup, nil
}

// runDisplay fetches each symbol and renders its nearest-expiry matrix.
func runDisplay(ctx context.Context, client *nse.Client, symbols []string, logger *logrus.Logger) error {
	for _, symbol := range symbols {
		chain, err := client.FetchOptionChain(ctx, symbol)
		if err != nil {
			logger.Errorf("Error fetching %s: %v", symbol, err)
			continue
		}
		if len(chain.ExpiryDates) == 0 {
			logger.Warnf("No expiries for %s", symbol)
			continue
		}

		expiry := chain.ExpiryDates[0]
		logger.Infof("%s option chain, expiry %s:", symbol, expiry)
		display.Render(os.Stdout, chain, expiry)
	}
	return nil
}

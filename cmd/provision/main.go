// Command provision performs the privileged one-time database setup using
// admin credentials: application database, app role, grants and optionally
// the option_chain table from a reference CSV header. Run it once per
// environment before the scraper's first database write.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/internal/provision"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load()

	cfg, missing := provision.LoadConfig()
	if len(missing) > 0 {
		logger.Errorf("Missing required environment variables: %s", strings.Join(missing, ", "))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := provision.Run(ctx, cfg, logger); err != nil {
		logger.Fatalf("Provisioning failed: %v", err)
	}

	logger.Info("Provisioning complete")
}

// Package scraper orchestrates one scrape run: calendar gate, per-symbol
// fetch, normalization and fan-out to the configured sinks.
package scraper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/internal/market"
	"github.com/openquant/nsechain/internal/models"
	"github.com/openquant/nsechain/internal/normalize"
	"github.com/openquant/nsechain/internal/nse"
	"github.com/openquant/nsechain/utils"
)

// Fetcher retrieves one symbol's option chain.
type Fetcher interface {
	FetchOptionChain(ctx context.Context, symbol string) (*nse.OptionChain, error)
}

// Sink receives one symbol's normalized batch.
type Sink interface {
	Name() string
	WriteRows(ctx context.Context, symbol string, rows []*models.OptionRow) error
}

// Runner ties the pipeline together. Symbols are processed strictly in
// order, one at a time; a failure on one symbol or sink never aborts the
// rest of the run.
type Runner struct {
	calendar *market.Calendar
	fetcher  Fetcher
	sinks    []Sink
	symbols  []string
	exchange string
	logger   *logrus.Logger

	// clock is injectable for tests; defaults to the IST wall clock.
	clock func() time.Time
}

// NewRunner assembles a runner. Sinks are written in the order given.
func NewRunner(calendar *market.Calendar, fetcher Fetcher, sinks []Sink,
	symbols []string, exchange string, logger *logrus.Logger) *Runner {

	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{
		calendar: calendar,
		fetcher:  fetcher,
		sinks:    sinks,
		symbols:  symbols,
		exchange: exchange,
		logger:   logger,
		clock:    utils.NowIST,
	}
}

// Run executes one complete scrape. A closed market is a clean early
// exit, not an error; per-symbol and per-sink failures are logged and the
// loop continues. Run itself only fails on preconditions, never on
// upstream or sink trouble.
func (r *Runner) Run(ctx context.Context) error {
	now := r.clock()
	status := r.calendar.Status(now)

	r.logger.Infof("Current time: %s (IST)", status.CurrentTime)
	r.logger.Infof("Market hours: %s - %s IST", status.MarketOpen, status.MarketClose)

	if !status.IsOpen {
		today := utils.FormatDate(now)
		switch {
		case status.IsWeekend:
			r.logger.Infof("%s is a weekend. Market is closed.", today)
		case status.IsHoliday:
			r.logger.Infof("%s is an NSE holiday. Market is closed.", today)
		default:
			r.logger.Infof("%s is outside market hours (%s - %s IST). Market is closed.",
				today, status.MarketOpen, status.MarketClose)
		}
		return nil
	}

	for _, symbol := range r.symbols {
		r.logger.Infof("Fetching %s option chain...", symbol)

		chain, err := r.fetcher.FetchOptionChain(ctx, symbol)
		if err != nil {
			r.logger.Errorf("Error fetching %s: %v", symbol, err)
			continue
		}

		rows := normalize.Rows(chain, symbol, r.exchange, now)
		if len(rows) == 0 {
			r.logger.Warnf("No data for %s", symbol)
			continue
		}

		for _, sink := range r.sinks {
			if err := sink.WriteRows(ctx, symbol, rows); err != nil {
				r.logger.Errorf("Error writing %s rows to %s sink: %v", symbol, sink.Name(), err)
			}
		}
	}

	return nil
}

// SetClock overrides the runner's time source, for tests.
func (r *Runner) SetClock(clock func() time.Time) {
	r.clock = clock
}

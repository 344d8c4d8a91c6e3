package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/nsechain/internal/market"
	"github.com/openquant/nsechain/internal/models"
	"github.com/openquant/nsechain/internal/nse"
	"github.com/openquant/nsechain/utils"
)

type stubFetcher struct {
	chains map[string]*nse.OptionChain
	errs   map[string]error
	calls  []string
}

func (f *stubFetcher) FetchOptionChain(_ context.Context, symbol string) (*nse.OptionChain, error) {
	f.calls = append(f.calls, symbol)
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.chains[symbol], nil
}

type stubSink struct {
	name    string
	err     error
	batches map[string][]*models.OptionRow
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) WriteRows(_ context.Context, symbol string, rows []*models.OptionRow) error {
	if s.err != nil {
		return s.err
	}
	if s.batches == nil {
		s.batches = make(map[string][]*models.OptionRow)
	}
	s.batches[symbol] = append(s.batches[symbol], rows...)
	return nil
}

func validChain() *nse.OptionChain {
	return &nse.OptionChain{
		Data: []nse.StrikeEntry{
			{
				StrikePrice: 22000,
				ExpiryDate:  "2024-06-27",
				CE:          &nse.OptionQuote{ExpiryDate: "2024-06-27", LastPrice: 120.5},
				PE:          &nse.OptionQuote{ExpiryDate: "2024-06-27", LastPrice: 80.25},
			},
		},
	}
}

func sessionClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, utils.ISTLocation())
	require.NoError(t, err)
	return func() time.Time { return ts }
}

func newRunner(t *testing.T, fetcher *stubFetcher, sinks []Sink, symbols []string) *Runner {
	t.Helper()
	cal, err := market.CalendarForYear(2024)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	r := NewRunner(cal, fetcher, sinks, symbols, "NSE", logger)
	// 2024-06-27 is a Thursday inside the session window.
	r.SetClock(sessionClock(t, "2024-06-27 10:30:00"))
	return r
}

func TestRunWritesAllSymbols(t *testing.T) {
	fetcher := &stubFetcher{chains: map[string]*nse.OptionChain{
		"NIFTY":     validChain(),
		"BANKNIFTY": validChain(),
	}}
	sink := &stubSink{name: "test"}

	r := newRunner(t, fetcher, []Sink{sink}, []string{"NIFTY", "BANKNIFTY"})
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"NIFTY", "BANKNIFTY"}, fetcher.calls)
	assert.Len(t, sink.batches["NIFTY"], 2)
	assert.Len(t, sink.batches["BANKNIFTY"], 2)
	assert.Equal(t, "NIFTY.NSE.OPT.20240627.22000.CALL", sink.batches["NIFTY"][0].Symbol)
}

func TestRunContinuesPastFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{
		chains: map[string]*nse.OptionChain{"BANKNIFTY": validChain()},
		errs: map[string]error{
			"NIFTY": &nse.FetchError{Symbol: "NIFTY", Attempts: 3, Err: errors.New("down")},
		},
	}
	sink := &stubSink{name: "test"}

	r := newRunner(t, fetcher, []Sink{sink}, []string{"NIFTY", "BANKNIFTY"})
	require.NoError(t, r.Run(context.Background()))

	assert.Empty(t, sink.batches["NIFTY"])
	assert.Len(t, sink.batches["BANKNIFTY"], 2)
}

func TestRunContinuesPastSinkFailure(t *testing.T) {
	fetcher := &stubFetcher{chains: map[string]*nse.OptionChain{
		"NIFTY":     validChain(),
		"BANKNIFTY": validChain(),
	}}
	broken := &stubSink{name: "broken", err: errors.New("disk full")}
	healthy := &stubSink{name: "healthy"}

	r := newRunner(t, fetcher, []Sink{broken, healthy}, []string{"NIFTY", "BANKNIFTY"})
	require.NoError(t, r.Run(context.Background()))

	assert.Len(t, healthy.batches["NIFTY"], 2)
	assert.Len(t, healthy.batches["BANKNIFTY"], 2)
}

func TestRunSkipsWriteOnEmptyChain(t *testing.T) {
	fetcher := &stubFetcher{chains: map[string]*nse.OptionChain{
		"NIFTY": {Data: nil},
	}}
	sink := &stubSink{name: "test"}

	r := newRunner(t, fetcher, []Sink{sink}, []string{"NIFTY"})
	require.NoError(t, r.Run(context.Background()))

	assert.Empty(t, sink.batches)
}

func TestRunExitsCleanlyWhenMarketClosed(t *testing.T) {
	fetcher := &stubFetcher{}
	sink := &stubSink{name: "test"}

	r := newRunner(t, fetcher, []Sink{sink}, []string{"NIFTY"})
	// Saturday.
	r.SetClock(sessionClock(t, "2024-06-29 10:30:00"))

	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, fetcher.calls)
	assert.Empty(t, sink.batches)
}

package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/openquant/nsechain/internal/models"
)

// DBSink adapts OptionStorage to the orchestrator's sink contract.
// The table is created on first write if absent.
type DBSink struct {
	store OptionStorage

	once    sync.Once
	onceErr error
}

// NewDBSink wraps an OptionStorage as a write sink.
func NewDBSink(store OptionStorage) *DBSink {
	return &DBSink{store: store}
}

// Name identifies the sink in orchestrator logs.
func (s *DBSink) Name() string { return "database" }

// WriteRows appends the batch to the option_chain table, creating the
// schema the first time through.
func (s *DBSink) WriteRows(_ context.Context, symbol string, rows []*models.OptionRow) error {
	s.once.Do(func() {
		s.onceErr = s.store.EnsureSchema()
	})
	if s.onceErr != nil {
		return fmt.Errorf("ensure schema: %w", s.onceErr)
	}

	if err := s.store.CreateRows(rows); err != nil {
		return fmt.Errorf("insert %d rows for %s: %w", len(rows), symbol, err)
	}
	return nil
}

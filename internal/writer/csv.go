// Package writer persists normalized rows to dated per-symbol CSV files.
package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/internal/models"
)

// CSVWriter appends rows to one file per symbol per trading day
// (<SYMBOL>_<YYYY-MM-DD>.csv). The header is written when the file is
// created and never repeated on append. Appends are not safe for
// concurrent multi-process use.
type CSVWriter struct {
	dir    string
	logger *logrus.Logger
}

// NewCSVWriter creates a writer rooted at dir, creating it if absent.
func NewCSVWriter(dir string, logger *logrus.Logger) (*CSVWriter, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &CSVWriter{dir: dir, logger: logger}, nil
}

// Name identifies the sink in orchestrator logs.
func (w *CSVWriter) Name() string { return "csv" }

// WriteRows appends the batch to the symbol's daily file. The file date
// comes from the rows' own timestamps, so replayed batches land in the
// day they were scraped.
func (w *CSVWriter) WriteRows(_ context.Context, symbol string, rows []*models.OptionRow) error {
	if len(rows) == 0 {
		return nil
	}

	day := rows[0].Timestamp
	if len(day) >= 10 {
		day = day[:10]
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.csv", symbol, day))

	_, statErr := os.Stat(path)
	exists := statErr == nil

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if exists {
		err = gocsv.MarshalWithoutHeaders(&rows, file)
	} else {
		err = gocsv.Marshal(&rows, file)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Infof("Saved %d rows to %s", len(rows), path)
	return nil
}

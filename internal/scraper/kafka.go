package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/openquant/nsechain/internal/models"
)

// Sender publishes normalized row batches to Kafka for downstream
// consumers. One message per (symbol, scrape) batch, keyed by symbol so a
// symbol's snapshots stay ordered within a partition.
type Sender struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

// NewSender creates a Kafka sink for the given broker and topic.
func NewSender(broker, topic string, logger *logrus.Logger) *Sender {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Sender{writer: writer, logger: logger}
}

// Name identifies the sink in orchestrator logs.
func (s *Sender) Name() string { return "kafka" }

// WriteRows serializes the batch as JSON and publishes it.
func (s *Sender) WriteRows(ctx context.Context, symbol string, rows []*models.OptionRow) error {
	if len(rows) == 0 {
		return nil
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("serialize %s batch: %w", symbol, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(symbol),
		Value: data,
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *Sender) Close() error {
	if err := s.writer.Close(); err != nil {
		s.logger.Errorf("Error closing Kafka producer: %v", err)
		return err
	}
	return nil
}

package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"tasktrack/internal/config"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

// EventStore persists consumed lifecycle events.
type EventStore interface {
	Record(ctx context.Context, ev *models.TaskEvent) error
}

// RunRecorder consumes the event stream and writes each event into the audit
// table. One consumer per process; a consumer group shares partitions across
// replicas. Returns immediately when no brokers are configured.
func RunRecorder(ctx context.Context, store EventStore) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(ctx, "Event recorder disabled (no Kafka brokers)")
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  "task-event-recorders",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Event recorder started", "topic", cfg.KafkaTopic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Recorder fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, store, msg.Value); err != nil {
			logger.Error(ctx, "Recorder handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid a poison pill blocking the partition
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Recorder commit failed", "error", err)
		}
	}
}

func handleMessage(ctx context.Context, store EventStore, payload []byte) error {
	var ev models.TaskEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	return store.Record(ctx, &ev)
}

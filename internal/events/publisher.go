// Package events carries the task activity stream: after a mutation commits,
// the controller publishes a lifecycle event to Kafka and a background
// recorder writes it into the task_events audit table. The stream is
// best-effort; publish failures are logged, never surfaced to the user, and
// the whole package is a no-op when no brokers are configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"tasktrack/internal/config"
	"tasktrack/internal/models"
	"tasktrack/pkg/logger"
)

// EnsureTopic creates the events topic with configured partitions
// (idempotent). Call at startup; if it fails the app still runs.
func EnsureTopic(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	conn, err := kafka.Dial("tcp", cfg.KafkaBrokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.KafkaTopic,
		NumPartitions:     cfg.KafkaParts,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", cfg.KafkaTopic, "partitions", cfg.KafkaParts)
}

var (
	writer *kafka.Writer
	wOnce  sync.Once
)

// Producer returns the global Kafka writer (initialized on first use).
// Returns nil when no brokers are configured.
func Producer(ctx context.Context) *kafka.Writer {
	wOnce.Do(func() {
		cfg := config.Get()
		if len(cfg.KafkaBrokers) == 0 {
			logger.Info(ctx, "Event stream disabled (no Kafka brokers)")
			return
		}
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    100,
			BatchTimeout: 0,
			Async:        true,
			RequiredAcks: kafka.RequireOne,
		}
		logger.Info(ctx, "Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	})
	return writer
}

// Publish emits a task lifecycle event. Fire-and-forget: errors are logged
// and swallowed so a stream outage never fails a user request.
func Publish(ctx context.Context, taskID, userID, action string) {
	w := Producer(ctx)
	if w == nil {
		return
	}
	ev := models.TaskEvent{
		ID:         uuid.New().String(),
		TaskID:     taskID,
		UserID:     userID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error(ctx, "Marshal task event failed", "error", err)
		return
	}
	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	})
	if err != nil {
		logger.Warn(ctx, "Publish task event failed", "error", err, "action", action)
	}
}

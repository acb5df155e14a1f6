package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"scheme-matcher/internal/config"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/util"
)

// KafkaProducer publishes quiz submission audit events. It is an
// optional component; when Kafka is not configured the service skips
// publishing entirely.
type KafkaProducer struct {
	writer *kafka.Writer
	config *config.KafkaConfig
}

// NewKafkaProducer creates a producer for the submission audit topic.
func NewKafkaProducer(cfg *config.Config, logger *zap.Logger) (*KafkaProducer, error) {
	kafkaConfig := cfg.Kafka

	if len(kafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("no Kafka brokers configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(kafkaConfig.Brokers...),
		Topic:        kafkaConfig.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}

	util.Info("Kafka producer initialized",
		zap.Strings("brokers", kafkaConfig.Brokers),
		zap.String("topic", kafkaConfig.Topic))

	return &KafkaProducer{
		writer: writer,
		config: &kafkaConfig,
	}, nil
}

// PublishSubmission emits a submission record keyed by user so a
// consumer sees one user's submissions in order.
func (k *KafkaProducer) PublishSubmission(ctx context.Context, record models.SubmissionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal submission event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(record.UserID),
		Value: payload,
		Time:  time.Now(),
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish submission event: %w", err)
	}
	return nil
}

// HealthCheck dials the first broker and reads partition metadata for
// the audit topic.
func (k *KafkaProducer) HealthCheck(ctx context.Context) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}

	conn, err := dialer.DialContext(ctx, "tcp", k.config.Brokers[0])
	if err != nil {
		return fmt.Errorf("kafka dial failed: %w", err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if ok {
		_ = conn.SetDeadline(deadline)
	}
	if _, err := conn.ReadPartitions(k.config.Topic); err != nil {
		return fmt.Errorf("kafka metadata read failed: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (k *KafkaProducer) Close() error {
	if k.writer != nil {
		if err := k.writer.Close(); err != nil {
			util.Error("failed to close Kafka producer", zap.Error(err))
			return err
		}
		util.Info("Kafka producer closed")
	}
	return nil
}

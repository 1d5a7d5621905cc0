package kafka

import (
	"context"
	stderrors "errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
)

// ConsumerConfig holds the consumer group connection settings.
type ConsumerConfig struct {
	Brokers        []string      `mapstructure:"brokers"`
	GroupID        string        `mapstructure:"group_id"`
	Topic          string        `mapstructure:"topic"`
	MinBytes       int           `mapstructure:"min_bytes"`
	MaxBytes       int           `mapstructure:"max_bytes"`
	MaxWait        time.Duration `mapstructure:"max_wait"`
	CommitInterval time.Duration `mapstructure:"commit_interval"`
	StartOffset    string        `mapstructure:"start_offset"`
}

// Handler processes one consumed message. Returning an error leaves the
// offset uncommitted so the message is redelivered.
type Handler func(ctx context.Context, key, value []byte) error

// readerInterface abstracts kafka.Reader for testing.
type readerInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads messages from a topic within a consumer group and
// commits offsets only after the handler succeeds.
type Consumer struct {
	reader  readerInterface
	config  ConsumerConfig
	logger  logging.Logger
	closed  atomic.Bool
	handled atomic.Int64
	errored atomic.Int64
}

// NewConsumer builds a consumer for the configured topic and group.
func NewConsumer(cfg ConsumerConfig, logger logging.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.ErrCodeBadRequest, "Kafka brokers required")
	}
	if cfg.GroupID == "" {
		return nil, errors.New(errors.ErrCodeBadRequest, "Consumer group ID required")
	}
	if cfg.Topic == "" {
		return nil, errors.New(errors.ErrCodeBadRequest, "Topic required")
	}
	applyConsumerDefaults(&cfg)

	startOffset := kafka.LastOffset
	if cfg.StartOffset == "earliest" {
		startOffset = kafka.FirstOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		CommitInterval: cfg.CommitInterval,
		StartOffset:    startOffset,
	})

	return &Consumer{reader: reader, config: cfg, logger: logger}, nil
}

func applyConsumerDefaults(cfg *ConsumerConfig) {
	if cfg.MinBytes == 0 {
		cfg.MinBytes = 1
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 10 << 20
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = time.Second
	}
}

// Run consumes messages until ctx is cancelled or the consumer closes.
// Handler failures are logged and the message is left uncommitted.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if stderrors.Is(err, context.Canceled) || stderrors.Is(err, io.EOF) || c.closed.Load() {
				return nil
			}
			return errors.Wrap(err, errors.ErrCodeMessageQueueError, "fetch failed")
		}

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			c.errored.Add(1)
			c.logger.Error("Message handling failed",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.errored.Add(1)
			c.logger.Error("Offset commit failed",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			continue
		}
		c.handled.Add(1)
	}
}

// Handled returns the number of successfully handled messages.
func (c *Consumer) Handled() int64 { return c.handled.Load() }

// Errored returns the number of handler or commit failures.
func (c *Consumer) Errored() int64 { return c.errored.Load() }

// Close stops the consumer; a running Run loop exits on its next fetch.
func (c *Consumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := c.reader.Close()
	c.logger.Info("Kafka consumer closed",
		logging.String("group", c.config.GroupID),
		logging.Int64("handled", c.handled.Load()))
	return err
}

//Personal.AI order the ending

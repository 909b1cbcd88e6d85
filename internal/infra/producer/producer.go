package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/event"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

const eventTypeHeader = "event_type"

// Writer kafka.Writer 的子集合
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer 訂單事件發送
type OrderEventProducer interface {
	Publish(ctx context.Context, evt event.Event) error
	Close() error
}

type Config struct {
	Brokers       []string
	Topic         string
	RetryAttempts int
	BatchTimeout  time.Duration
}

func (c Config) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

// NewKafkaWriter 同步寫入, 以 key 做 hash 分區讓同一張訂單的事件保持順序
func NewKafkaWriter(cfg Config, logger *zerolog.Logger) *kafka.Writer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  1,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
}

type KafkaOrderProducer struct {
	writer        Writer
	topic         string
	retryAttempts int
	closed        atomic.Bool
}

func NewKafkaOrderProducer(writer Writer, cfg Config) *KafkaOrderProducer {
	if writer == nil {
		panic("kafka order producer init failed, writer is nil")
	}
	return &KafkaOrderProducer{
		writer:        writer,
		topic:         cfg.Topic,
		retryAttempts: cfg.RetryAttempts,
	}
}

// Publish 同步發送, 只重試暫時性錯誤
func (p *KafkaOrderProducer) Publish(ctx context.Context, evt event.Event) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type(), err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.Key()),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(evt.Type())},
		},
	}

	for attempt := 0; attempt <= p.retryAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("produce to %s: %w", p.topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if !IsTemporary(err) {
			break
		}
	}
	return fmt.Errorf("produce to %s: %w", p.topic, err)
}

func (p *KafkaOrderProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func IsTemporary(err error) bool {
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Temporary()
	}
	var temp interface{ Temporary() bool }
	if errors.As(err, &temp) {
		return temp.Temporary()
	}
	return false
}

// NoopProducer 沒有設定 broker 時使用
type NoopProducer struct{}

func (NoopProducer) Publish(ctx context.Context, evt event.Event) error { return nil }
func (NoopProducer) Close() error                                      { return nil }

var (
	_ OrderEventProducer = (*KafkaOrderProducer)(nil)
	_ OrderEventProducer = NoopProducer{}
)

package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	"github.com/segmentio/kafka-go"
)

// Producer publishes workflow events from a buffered inbox on one goroutine.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *slog.Logger
	dropped atomic.Int64
}

func NewProducer(brokers []string, topic string, buf int, log *slog.Logger) *Producer {
	if log == nil {
		log = slog.Default()
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		log:     log,
	}
}

// Start runs the writer loop until ctx is done or Close is called; either
// way the inbox is flushed before the writer closes.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		defer func() { _ = p.w.Close() }()
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m, ok := <-p.inbox:
						if !ok {
							return
						}
						p.write(m)
					default:
						return
					}
				}
			case m, ok := <-p.inbox:
				if !ok {
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.log.Error("kafka write failed", "topic", p.w.Topic, "error", err)
	}
}

// Emit queues a workflow envelope keyed by its correlation id. It never
// blocks a request: when the inbox is full the event is dropped and counted.
func (p *Producer) Emit(env orders.Envelope) {
	value, err := json.Marshal(env)
	if err != nil {
		p.dropped.Add(1)
		p.log.Error("event not encodable, dropping event", "type", env.EventType, "event_id", env.EventID, "error", err)
		return
	}
	m := kafka.Message{
		Key:   []byte(env.CorrelationID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(env.EventType)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
		},
	}
	select {
	case p.inbox <- m:
	default:
		p.dropped.Add(1)
		p.log.Warn("event inbox full, dropping event", "type", env.EventType, "event_id", env.EventID)
	}
}

// Dropped reports how many events Emit discarded.
func (p *Producer) Dropped() int64 { return p.dropped.Load() }

// Close stops accepting messages; the loop flushes what is queued and exits.
func (p *Producer) Close() { close(p.inbox) }

// WaitClosed blocks until the loop has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }

// Package journal records storefront workflow events and projects the last
// known stage of every order item they mention.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
)

// Store is the persistence the service writes to; *Repo satisfies it.
type Store interface {
	Append(ctx context.Context, env orders.Envelope) (bool, error)
	AdvanceStage(ctx context.Context, itemID int64, to orders.Stage) (bool, error)
}

// Deduper short-circuits redelivered events; *redisx.Deduper satisfies it.
type Deduper interface {
	Seen(ctx context.Context, id string) (bool, error)
	Mark(ctx context.Context, id string) error
}

type Service struct {
	Store Store
	Dedup Deduper
	Log   *slog.Logger
}

// HandleMessage is installed as the consumer handler.
func (s *Service) HandleMessage(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// poison message: log and let the offset advance
		s.log().Error("undecodable event", "offset", m.Offset, "error", err)
		return nil
	}
	return s.Handle(ctx, env)
}

// Handle journals one event. The dedup mark is only set once everything
// succeeded, so the consumer's retry of a failed event runs it in full.
func (s *Service) Handle(ctx context.Context, env orders.Envelope) error {
	if env.EventID == "" {
		s.log().Error("event without id, skipped", "type", env.EventType)
		return nil
	}
	if s.Dedup != nil {
		// Redis is only a fast path; the journal's primary key is the real guard.
		if seen, err := s.Dedup.Seen(ctx, env.EventID); err == nil && seen {
			return nil
		}
	}

	if _, err := s.Store.Append(ctx, env); err != nil {
		return fmt.Errorf("append %s: %w", env.EventID, err)
	}
	if err := s.project(ctx, env); err != nil {
		return err
	}
	if s.Dedup != nil {
		if err := s.Dedup.Mark(ctx, env.EventID); err != nil {
			s.log().Warn("dedup mark failed", "event_id", env.EventID, "error", err)
		}
	}
	return nil
}

// project advances the stage of every item env moves. Replays are harmless:
// a stage that is already reached is refused, not rewound.
func (s *Service) project(ctx context.Context, env orders.Envelope) error {
	stage, ok := orders.StageOf(env.EventType)
	if !ok {
		return nil
	}
	ids, err := itemsOf(env)
	if err != nil {
		return err
	}
	for _, id := range ids {
		moved, err := s.Store.AdvanceStage(ctx, id, stage)
		if err != nil {
			return fmt.Errorf("advance item %d: %w", id, err)
		}
		if !moved {
			s.log().Info("stage unchanged", "item_id", id, "to", stage.String(), "event", env.EventType)
		}
	}
	return nil
}

// itemsOf lists the order items an event moves.
func itemsOf(env orders.Envelope) ([]int64, error) {
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := orders.DecodePayload[orders.OrderPlacedPayload](env)
		if err != nil {
			return nil, err
		}
		return p.Items, nil
	case orders.EventQuotationSent:
		p, err := orders.DecodePayload[orders.QuotationSentPayload](env)
		if err != nil {
			return nil, err
		}
		return []int64{p.OrderItemID}, nil
	case orders.EventItemAddedToCart:
		p, err := orders.DecodePayload[orders.ItemAddedToCartPayload](env)
		if err != nil {
			return nil, err
		}
		if p.OrderItemID == 0 {
			return nil, nil
		}
		return []int64{p.OrderItemID}, nil
	}
	return nil, nil
}

func (s *Service) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

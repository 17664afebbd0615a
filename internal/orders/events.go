package orders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventItemAddedToCart     = "ItemAddedToCart"
	EventItemRemovedFromCart = "ItemRemovedFromCart"
	EventOrderPlaced         = "OrderPlaced"
	EventQuotationSent       = "QuotationSent"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order item id, or customer id for OrderPlaced
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps payload in a version 1 envelope with a fresh event id.
func NewEnvelope(eventType, producer, correlationID string, payload any, now time.Time) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    now.UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

// DecodePayload decodes env's payload into its event-specific type.
func DecodePayload[T any](env Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return t, fmt.Errorf("%s payload: %w", env.EventType, err)
	}
	return t, nil
}

// ---- payloads ----

type ItemAddedToCartPayload struct {
	UserID      int64 `json:"user_id"`
	ProductID   int64 `json:"product_id"`
	OrderItemID int64 `json:"order_item_id,omitempty"` // only when the backend returned one
	Qty         int   `json:"qty"`
}

type ItemRemovedFromCartPayload struct {
	UserID      int64 `json:"user_id"`
	OrderItemID int64 `json:"order_item_id"`
}

type OrderPlacedPayload struct {
	CustomerID int64   `json:"customer_id"`
	Address    string  `json:"address"`
	Items      []int64 `json:"items,omitempty"` // items this process saw move to Confirmed
}

type QuotationSentPayload struct {
	OrderItemID           int64  `json:"order_item_id"`
	DistributorID         int64  `json:"distributor_id"`
	Price                 string `json:"price"`
	AvailabilityStock     int    `json:"availability_stock"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

// StageOf returns the stage an event moves its items into, if any.
func StageOf(eventType string) (Stage, bool) {
	switch eventType {
	case EventItemAddedToCart:
		return StageInCart, true
	case EventOrderPlaced:
		return StageConfirmed, true
	case EventQuotationSent:
		return StageQuoted, true
	}
	return StageBrowsing, false
}

package orders

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	env, err := NewEnvelope(EventOrderPlaced, "storefront", "5", OrderPlacedPayload{CustomerID: 5, Address: "221B Baker Street", Items: []int64{42}}, now)
	if err != nil {
		t.Fatal(err)
	}
	if env.EventID == "" || env.EventVersion != 1 || env.Producer != "storefront" {
		t.Errorf("envelope = %+v", env)
	}
	if env.OccurredAt.Location() != time.UTC {
		t.Errorf("occurred_at not UTC: %v", env.OccurredAt)
	}
	var p OrderPlacedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil || p.CustomerID != 5 || len(p.Items) != 1 {
		t.Errorf("payload = %s (%v)", env.Payload, err)
	}

	other, _ := NewEnvelope(EventOrderPlaced, "storefront", "5", struct{}{}, now)
	if other.EventID == env.EventID {
		t.Error("event ids must be unique")
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		event string
		want  Stage
		ok    bool
	}{
		{EventItemAddedToCart, StageInCart, true},
		{EventOrderPlaced, StageConfirmed, true},
		{EventQuotationSent, StageQuoted, true},
		{EventItemRemovedFromCart, StageBrowsing, false},
		{"Unknown", StageBrowsing, false},
	}
	for _, tt := range tests {
		got, ok := StageOf(tt.event)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StageOf(%s) = %s, %v", tt.event, got, ok)
		}
	}
}

func TestDecodePayload(t *testing.T) {
	env, err := NewEnvelope(EventQuotationSent, "storefront", "7", QuotationSentPayload{OrderItemID: 7, DistributorID: 8}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	p, err := DecodePayload[QuotationSentPayload](env)
	if err != nil || p.OrderItemID != 7 || p.DistributorID != 8 {
		t.Fatalf("payload = %+v, %v", p, err)
	}

	env.Payload = json.RawMessage(`[1,2]`)
	if _, err := DecodePayload[OrderPlacedPayload](env); err == nil {
		t.Fatal("expected decode error")
	}
}

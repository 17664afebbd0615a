package orders

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestClampQuantity(t *testing.T) {
	tests := map[int]int{-5: 1, 0: 1, 1: 1, 50: 50, 99: 99, 100: 99, math.MaxInt: 99}
	for in, want := range tests {
		if got := ClampQuantity(in); got != want {
			t.Errorf("ClampQuantity(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdjustQuantityStaysInRange(t *testing.T) {
	deltas := []int{math.MinInt, -1000, -99, -1, 0, 1, 98, 1000, math.MaxInt}
	for q := -2; q <= 101; q++ {
		for _, d := range deltas {
			got := AdjustQuantity(q, d)
			if got < MinQuantity || got > MaxQuantity {
				t.Fatalf("AdjustQuantity(%d, %d) = %d out of range", q, d, got)
			}
		}
	}
}

func TestAdjustQuantity(t *testing.T) {
	tests := []struct{ q, delta, want int }{
		{1, -1, 1},
		{1, 1, 2},
		{99, 1, 99},
		{98, 1, 99},
		{5, -3, 2},
		{3, 0, 3},
	}
	for _, tt := range tests {
		if got := AdjustQuantity(tt.q, tt.delta); got != tt.want {
			t.Errorf("AdjustQuantity(%d, %d) = %d, want %d", tt.q, tt.delta, got, tt.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	price := decimal.RequireFromString("12.50")
	if got := FormatMoney(LineTotal(price, 5)); got != "62.50" {
		t.Errorf("LineTotal = %s, want 62.50", got)
	}
	if got := FormatMoney(LineTotal(decimal.RequireFromString("0.1"), 3)); got != "0.30" {
		t.Errorf("LineTotal = %s, want 0.30", got)
	}
}

func TestSummarize(t *testing.T) {
	items := []OrderItem{
		{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 3},
		{ID: 2, Price: decimal.RequireFromString("4.99"), Quantity: 1},
	}
	got := Summarize(items)
	if FormatMoney(got.Subtotal) != "34.99" {
		t.Errorf("subtotal = %s", got.Subtotal)
	}
	if FormatMoney(got.Tax) != "3.50" {
		t.Errorf("tax = %s", got.Tax)
	}
	if FormatMoney(got.Total) != "38.49" {
		t.Errorf("total = %s", got.Total)
	}

	empty := Summarize(nil)
	if !empty.Total.IsZero() {
		t.Errorf("empty cart total = %s", empty.Total)
	}
}

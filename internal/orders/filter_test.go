package orders

import (
	"testing"
)

func TestFilterQuotations(t *testing.T) {
	qs := []Quotation{
		{QuotationID: 1, ItemName: "Galaxy Phone", Status: "pending"},
		{QuotationID: 2, ItemName: "USB-C Cable", Status: "accepted"},
		{QuotationID: 3, ItemName: "phone case", Status: "rejected"},
		{QuotationID: 4, ItemName: "Action Camera", Status: "accepted"},
	}
	tests := []struct {
		name string
		f    Filter
		want []int64
	}{
		{"zero filter keeps all", Filter{}, []int64{1, 2, 3, 4}},
		{"all", Filter{Status: "all"}, []int64{1, 2, 3, 4}},
		{"status", Filter{Status: "accepted"}, []int64{2, 4}},
		{"status is exact", Filter{Status: "Rejected"}, []int64{}},
		{"all with search", Filter{Status: "all", Search: "cam"}, []int64{4}},
		{"search ignores case", Filter{Search: "PHONE"}, []int64{1, 3}},
		{"status and search", Filter{Status: "pending", Search: "phone"}, []int64{1}},
		{"no match", Filter{Search: "laptop"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterQuotations(qs, tt.f)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d quotations, want %d", len(got), len(tt.want))
			}
			for i, q := range got {
				if q.QuotationID != tt.want[i] {
					t.Errorf("got[%d] = %d, want %d", i, q.QuotationID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	qs := []Quotation{
		{QuotationID: 1, ItemName: "a", Status: "pending"},
		{QuotationID: 2, ItemName: "b", Status: "accepted"},
	}
	got := FilterQuotations(qs, Filter{Status: "accepted"})
	got[0].ItemName = "changed"
	if qs[0].ItemName != "a" || qs[1].ItemName != "b" || len(qs) != 2 {
		t.Fatalf("input modified: %+v", qs)
	}
}

func TestFilterItemsUsesProductName(t *testing.T) {
	items := []OrderItem{
		{ID: 1, ProductName: "Smart Watch"},
		{ID: 2, ItemName: "Tablet"},
	}
	got := FilterItems(items, Filter{Search: "watch"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %+v", got)
	}
	if got := FilterItems(nil, Filter{}); got == nil || len(got) != 0 {
		t.Fatalf("nil input should give an empty, non-nil slice")
	}
}

func TestFilterItemsByStage(t *testing.T) {
	items := []OrderItem{
		{ID: 1, ProductName: "Smart Watch", Status: "In Cart"},
		{ID: 2, ProductName: "Tablet", Status: "in_cart"},
		{ID: 3, ProductName: "Drone", Status: "Confirmed"},
	}
	got := FilterItems(items, Filter{Status: StageInCart.String()})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("got %+v", got)
	}
	if got := FilterItems(items, Filter{Status: "confirmed", Search: "dro"}); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("got %+v", got)
	}
}

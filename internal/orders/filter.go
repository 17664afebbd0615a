package orders

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter is the search box plus status dropdown shared by the quotation,
// requested-orders and my-orders lists.
type Filter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

func (f Filter) matches(name, status string) bool {
	if f.Status != "" && !strings.EqualFold(f.Status, StatusAll) && status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String(f.Search))
}

// FilterQuotations returns a new slice; the input is never modified.
func FilterQuotations(qs []Quotation, f Filter) []Quotation {
	out := make([]Quotation, 0, len(qs))
	for _, q := range qs {
		if f.matches(q.ItemName, q.Status) {
			out = append(out, q)
		}
	}
	return out
}

// FilterItems compares statuses by stage name, so a filter from
// ParseItemStatusFilter matches "In Cart" and "in_cart" alike.
func FilterItems(items []OrderItem, f Filter) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		status := it.Status
		if st, ok := ParseStage(status); ok {
			status = st.String()
		}
		if f.matches(it.Name(), status) {
			out = append(out, it)
		}
	}
	return out
}

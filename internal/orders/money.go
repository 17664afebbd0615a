package orders

import "github.com/shopspring/decimal"

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// TaxRate is a display-only estimate; it is never sent to the backend.
var TaxRate = decimal.NewFromFloat(0.10)

// ClampQuantity forces q into [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// AdjustQuantity applies delta to q and clamps the result. Deltas beyond the
// range width are cut first so huge values cannot overflow.
func AdjustQuantity(q, delta int) int {
	const span = MaxQuantity - MinQuantity
	if delta > span {
		delta = span
	}
	if delta < -span {
		delta = -span
	}
	return ClampQuantity(ClampQuantity(q) + delta)
}

func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// Totals is the cart summary shown next to the item list.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Summarize(items []OrderItem) Totals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	sub = sub.Round(2)
	tax := sub.Mul(TaxRate).Round(2)
	return Totals{Subtotal: sub, Tax: tax, Total: sub.Add(tax)}
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

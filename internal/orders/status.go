package orders

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is where an order item sits in the combined customer + distributor
// lifecycle. The zero value is StageBrowsing (no item yet).
type Stage int

const (
	StageBrowsing Stage = iota
	StageInCart
	StageConfirmed
	StageQuotePending
	StageQuoted
	StageAccepted
	StageRejected
)

var stageNames = [...]string{
	StageBrowsing:     "browsing",
	StageInCart:       "in cart",
	StageConfirmed:    "confirmed",
	StageQuotePending: "quote pending",
	StageQuoted:       "quoted",
	StageAccepted:     "accepted",
	StageRejected:     "rejected",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

var validNext = map[Stage]map[Stage]bool{
	StageBrowsing:     {StageInCart: true},
	StageInCart:       {StageConfirmed: true},
	StageConfirmed:    {StageQuotePending: true, StageQuoted: true},
	StageQuotePending: {StageQuoted: true},
	StageQuoted:       {StageAccepted: true, StageRejected: true},
	StageAccepted:     {},
	StageRejected:     {},
}

func CanTransition(from, to Stage) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transition exists from s.
func (s Stage) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// Quotable reports whether a distributor may submit a quotation for an item
// in stage s. Several distributors may quote the same item, so an item that
// is already quoted stays quotable until the customer decides.
func (s Stage) Quotable() bool {
	return Reachable(StageConfirmed, s) && Reachable(s, StageQuoted)
}

// Reachable reports whether to can be reached from from by zero or more
// forward transitions.
func Reachable(from, to Stage) bool {
	if from == to {
		return true
	}
	for next := range validNext[from] {
		if Reachable(next, to) {
			return true
		}
	}
	return false
}

var ErrIllegalTransition = errors.New("illegal order item transition")

// TransitionError names the move that was refused.
type TransitionError struct {
	ItemID int64
	From   Stage
	To     Stage
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order item %d: %s -> %s not allowed", e.ItemID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// ParseStage maps a backend status string onto a Stage. The backend is not
// consistent about casing or separators ("In Cart", "in_cart", "Confirmed").
func ParseStage(status string) (Stage, bool) {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	switch s {
	case "in cart", "incart", "cart":
		return StageInCart, true
	case "confirmed":
		return StageConfirmed, true
	case "quote pending", "pending", "requested":
		return StageQuotePending, true
	case "quoted":
		return StageQuoted, true
	case "approved", "accepted", "delivered":
		return StageAccepted, true
	case "rejected", "cancelled", "canceled":
		return StageRejected, true
	}
	return StageBrowsing, false
}

// QuotationStatus is the distributor-side status of a quotation.
type QuotationStatus string

const (
	QuotationPending  QuotationStatus = "pending"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// ParseStatusFilter accepts pending|accepted|rejected|all (empty means all).
func ParseStatusFilter(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", StatusAll:
		return StatusAll, nil
	case string(QuotationPending), string(QuotationAccepted), string(QuotationRejected):
		return v, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// ParseItemStatusFilter accepts any order item status ParseStage knows, or
// all (empty means all), and returns the stage's canonical name.
func ParseItemStatusFilter(s string) (string, error) {
	if v := strings.TrimSpace(s); v == "" || strings.EqualFold(v, StatusAll) {
		return StatusAll, nil
	}
	st, ok := ParseStage(s)
	if !ok {
		return "", fmt.Errorf("unknown order status filter %q", s)
	}
	return st.String(), nil
}

package orders

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageBrowsing, StageInCart, true},
		{StageInCart, StageConfirmed, true},
		{StageConfirmed, StageQuotePending, true},
		{StageConfirmed, StageQuoted, true},
		{StageQuotePending, StageQuoted, true},
		{StageQuoted, StageAccepted, true},
		{StageQuoted, StageRejected, true},
		{StageInCart, StageQuoted, false},
		{StageConfirmed, StageInCart, false},
		{StageAccepted, StageRejected, false},
		{StageRejected, StageQuoted, false},
		{StageBrowsing, StageConfirmed, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalAndQuotable(t *testing.T) {
	for _, s := range []Stage{StageAccepted, StageRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Stage{StageBrowsing, StageInCart, StageConfirmed, StageQuotePending, StageQuoted} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}

	quotable := map[Stage]bool{StageConfirmed: true, StageQuotePending: true, StageQuoted: true}
	for s := StageBrowsing; s <= StageRejected; s++ {
		if got := s.Quotable(); got != quotable[s] {
			t.Errorf("%s.Quotable() = %v", s, got)
		}
	}
}

func TestReachable(t *testing.T) {
	if !Reachable(StageInCart, StageAccepted) {
		t.Error("accepted should be reachable from in cart")
	}
	if !Reachable(StageQuoted, StageQuoted) {
		t.Error("a stage reaches itself")
	}
	if Reachable(StageQuoted, StageConfirmed) {
		t.Error("stages never move backwards")
	}
	if Reachable(StageAccepted, StageRejected) {
		t.Error("accepted and rejected are separate ends")
	}
}

func TestTransitionErrorUnwraps(t *testing.T) {
	err := error(&TransitionError{ItemID: 7, From: StageInCart, To: StageQuoted})
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatal("TransitionError should wrap ErrIllegalTransition")
	}
	if got, want := err.Error(), "order item 7: in cart -> quoted not allowed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		in   string
		want Stage
		ok   bool
	}{
		{"In Cart", StageInCart, true},
		{"in_cart", StageInCart, true},
		{"Confirmed", StageConfirmed, true},
		{" pending ", StageQuotePending, true},
		{"quote-pending", StageQuotePending, true},
		{"Quoted", StageQuoted, true},
		{"Approved", StageAccepted, true},
		{"cancelled", StageRejected, true},
		{"shipped", StageBrowsing, false},
		{"", StageBrowsing, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStage(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseStage(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]string{"": "all", "ALL": "all", "Pending": "pending", "accepted": "accepted", "rejected": "rejected"} {
		got, err := ParseStatusFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseStatusFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStatusFilter("shipped"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestParseItemStatusFilter(t *testing.T) {
	for in, want := range map[string]string{"": "all", " All ": "all", "Confirmed": "confirmed", "in_cart": "in cart", "Delivered": "accepted"} {
		got, err := ParseItemStatusFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseItemStatusFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseItemStatusFilter("shipped"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestStageString(t *testing.T) {
	if got := StageQuotePending.String(); got != "quote pending" {
		t.Errorf("String() = %q", got)
	}
	if got := Stage(42).String(); got != "stage(42)" {
		t.Errorf("String() = %q", got)
	}
}

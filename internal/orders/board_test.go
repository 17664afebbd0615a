package orders

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestBoardObserveNeverRewinds(t *testing.T) {
	b := NewBoard()
	if got := b.Observe(7, 1, StageQuoted); got != StageQuoted {
		t.Fatalf("unknown item adopted as %s", got)
	}
	if got := b.Observe(7, 1, StageConfirmed); got != StageQuoted {
		t.Errorf("stale observation rewound item to %s", got)
	}
	if got := b.Observe(7, 1, StageAccepted); got != StageAccepted {
		t.Errorf("forward observation ignored, item at %s", got)
	}
	if got := b.Observe(7, 1, StageRejected); got != StageAccepted {
		t.Errorf("terminal item moved to %s", got)
	}
}

func TestBoardAdvance(t *testing.T) {
	b := NewBoard()
	b.Observe(7, 0, StageConfirmed)
	if err := b.Advance(7, StageQuoted); err != nil {
		t.Fatal(err)
	}
	err := b.Advance(7, StageQuoted)
	var te *TransitionError
	if !errors.As(err, &te) || te.From != StageQuoted {
		t.Fatalf("repeated advance should be refused, got %v", err)
	}
	if err := b.Advance(99, StageConfirmed); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("unknown item is browsing and cannot be confirmed: %v", err)
	}
}

func TestBoardAdvanceOwned(t *testing.T) {
	b := NewBoard()
	b.Observe(3, 1, StageInCart)
	b.Observe(1, 1, StageInCart)
	b.Observe(2, 2, StageInCart)
	b.Observe(4, 1, StageConfirmed)

	moved := b.AdvanceOwned(1, StageInCart, StageConfirmed)
	if !reflect.DeepEqual(moved, []int64{1, 3}) {
		t.Fatalf("moved = %v", moved)
	}
	if s, _ := b.Stage(2); s != StageInCart {
		t.Errorf("other owner's item moved to %s", s)
	}
	if again := b.AdvanceOwned(1, StageInCart, StageConfirmed); len(again) != 0 {
		t.Errorf("second pass moved %v", again)
	}

	b.Forget(1)
	if _, ok := b.Stage(1); ok {
		t.Error("forgotten item still tracked")
	}
}

func TestBoardConcurrentAdvanceOnce(t *testing.T) {
	b := NewBoard()
	b.Observe(7, 0, StageConfirmed)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Advance(7, StageQuoted) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("%d advances succeeded, want 1", wins)
	}
}

func TestBoardEvictsLeastRecentlyTouched(t *testing.T) {
	b := NewBoardSize(2)
	b.Observe(1, 1, StageInCart)
	b.Observe(2, 1, StageInCart)
	// touching 1 leaves 2 as the oldest
	b.Observe(1, 1, StageConfirmed)
	b.Observe(3, 1, StageInCart)

	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if _, ok := b.Stage(2); ok {
		t.Error("item 2 should have been evicted")
	}
	if s, ok := b.Stage(1); !ok || s != StageConfirmed {
		t.Errorf("item 1 = %s, %v", s, ok)
	}
	if moved := b.AdvanceOwned(1, StageInCart, StageConfirmed); !reflect.DeepEqual(moved, []int64{3}) {
		t.Errorf("moved = %v", moved)
	}
}

func TestBoardStaysBounded(t *testing.T) {
	b := NewBoardSize(100)
	for id := int64(1); id <= 1000; id++ {
		b.Observe(id, id%7, StageConfirmed)
		if id%3 == 0 {
			_ = b.Advance(id, StageQuoted)
		}
	}
	if b.Len() != 100 {
		t.Fatalf("len = %d, want 100", b.Len())
	}
	if s, ok := b.Stage(1000); !ok || s != StageConfirmed {
		t.Errorf("newest item = %s, %v", s, ok)
	}
	if _, ok := b.Stage(1); ok {
		t.Error("oldest item still tracked")
	}
}

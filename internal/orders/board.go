package orders

import (
	"container/list"
	"sort"
	"sync"
)

// DefaultBoardSize bounds how many items a Board remembers.
const DefaultBoardSize = 10000

type boardEntry struct {
	id    int64
	stage Stage
	owner int64
}

// Board tracks the last known stage of the order items this process has
// observed. Stages only move forward; a stale read-back never rewinds an item.
// Once more than size items are tracked the least recently touched one is
// dropped, and a dropped item is treated as never seen.
type Board struct {
	mu    sync.RWMutex
	size  int
	items map[int64]*list.Element
	lru   *list.List
}

func NewBoard() *Board {
	return NewBoardSize(DefaultBoardSize)
}

// NewBoardSize returns a Board holding at most size items (DefaultBoardSize
// when size <= 0).
func NewBoardSize(size int) *Board {
	if size <= 0 {
		size = DefaultBoardSize
	}
	return &Board{size: size, items: map[int64]*list.Element{}, lru: list.New()}
}

func (b *Board) Stage(itemID int64) (Stage, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if el, ok := b.items[itemID]; ok {
		return el.Value.(*boardEntry).stage, true
	}
	return StageBrowsing, false
}

// Len is the number of items currently tracked.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lru.Len()
}

// Observe records a stage reported by the backend (or implied by the view
// the item was listed in). Unknown items are adopted as-is; known items only
// move to stages reachable from where they are.
func (b *Board) Observe(itemID, ownerID int64, s Stage) Stage {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.touch(itemID)
	if !ok {
		e = b.insert(itemID, s)
	} else if e.stage != s && Reachable(e.stage, s) {
		e.stage = s
	}
	if ownerID != 0 {
		e.owner = ownerID
	}
	return e.stage
}

// Advance performs one explicit transition.
func (b *Board) Advance(itemID int64, to Stage) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.touch(itemID)
	from := StageBrowsing
	if ok {
		from = e.stage
	}
	if !CanTransition(from, to) {
		return &TransitionError{ItemID: itemID, From: from, To: to}
	}
	if !ok {
		b.insert(itemID, to)
		return nil
	}
	e.stage = to
	return nil
}

// AdvanceOwned moves every item of owner currently in from to to, returning
// the ids that moved.
func (b *Board) AdvanceOwned(ownerID int64, from, to Stage) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !CanTransition(from, to) {
		return nil
	}
	var moved []int64
	for id, el := range b.items {
		e := el.Value.(*boardEntry)
		if e.stage == from && e.owner == ownerID {
			e.stage = to
			b.lru.MoveToFront(el)
			moved = append(moved, id)
		}
	}
	sort.Slice(moved, func(i, j int) bool { return moved[i] < moved[j] })
	return moved
}

func (b *Board) Forget(itemID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if el, ok := b.items[itemID]; ok {
		b.lru.Remove(el)
		delete(b.items, itemID)
	}
}

// touch marks itemID as most recently used. Callers hold mu.
func (b *Board) touch(itemID int64) (*boardEntry, bool) {
	el, ok := b.items[itemID]
	if !ok {
		return nil, false
	}
	b.lru.MoveToFront(el)
	return el.Value.(*boardEntry), true
}

// insert adds a new item and evicts past capacity. Callers hold mu.
func (b *Board) insert(itemID int64, s Stage) *boardEntry {
	e := &boardEntry{id: itemID, stage: s}
	b.items[itemID] = b.lru.PushFront(e)
	for b.lru.Len() > b.size {
		oldest := b.lru.Back()
		b.lru.Remove(oldest)
		delete(b.items, oldest.Value.(*boardEntry).id)
	}
	return e
}

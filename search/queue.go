package search

import (
	"container/heap"
	"fmt"
)

// Item is a key and its priority, as returned by Queue.DeleteMin.
type Item[K comparable] struct {
	Key      K
	Priority float64
}

// queueEntry is a heap slot. seq records insertion order and breaks ties
// between equal priorities so the earliest insertion always wins.
type queueEntry[K comparable] struct {
	key      K
	priority float64
	seq      uint64
	index    int
}

// entryHeap implements heap.Interface ordered by (priority, seq).
type entryHeap[K comparable] []*queueEntry[K]

func (h entryHeap[K]) Len() int { return len(h) }

func (h entryHeap[K]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[K]) Push(x interface{}) {
	entry := x.(*queueEntry[K])
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *entryHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*h = old[:n-1]
	return entry
}

// Queue is an associative min-priority queue keyed by K.
//
// Every key appears at most once. Ordering is by priority; among equal
// priorities the entry inserted earliest is returned first. A key that is
// removed and inserted again counts as a new insertion.
//
// The engine uses one Queue for the open frontier and one for the closed
// set. Queue is not safe for concurrent use; each search run owns its own.
//
// Example:
//
//	q := search.NewQueue[string]()
//	_ = q.Insert("a", 2)
//	_ = q.Insert("b", 1)
//	item, _ := q.DeleteMin() // item.Key == "b"
type Queue[K comparable] struct {
	heap    entryHeap[K]
	index   map[K]*queueEntry[K]
	nextSeq uint64
}

// NewQueue creates an empty Queue.
func NewQueue[K comparable]() *Queue[K] {
	return &Queue[K]{
		heap:  make(entryHeap[K], 0),
		index: make(map[K]*queueEntry[K]),
	}
}

// Insert adds key with the given priority.
//
// Returns an *EngineError wrapping ErrDuplicateKey if key is already in the
// queue. The existing entry is left untouched.
func (q *Queue[K]) Insert(key K, priority float64) error {
	if _, exists := q.index[key]; exists {
		return &EngineError{
			Message: fmt.Sprintf("insert of %v: already queued", key),
			Code:    "DUPLICATE_KEY",
			Cause:   ErrDuplicateKey,
		}
	}

	entry := &queueEntry[K]{key: key, priority: priority, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(&q.heap, entry)
	q.index[key] = entry
	return nil
}

// DeleteMin removes and returns the entry with the smallest priority.
// The second return value is false when the queue is empty.
func (q *Queue[K]) DeleteMin() (Item[K], bool) {
	if q.heap.Len() == 0 {
		return Item[K]{}, false
	}
	entry := heap.Pop(&q.heap).(*queueEntry[K])
	delete(q.index, entry.key)
	return Item[K]{Key: entry.key, Priority: entry.priority}, true
}

// Contains reports whether key is in the queue.
func (q *Queue[K]) Contains(key K) bool {
	_, exists := q.index[key]
	return exists
}

// Priority returns the stored priority for key. The second return value is
// false when key is absent.
func (q *Queue[K]) Priority(key K) (float64, bool) {
	entry, exists := q.index[key]
	if !exists {
		return 0, false
	}
	return entry.priority, true
}

// Remove deletes key from the queue and reports whether it was present.
func (q *Queue[K]) Remove(key K) bool {
	entry, exists := q.index[key]
	if !exists {
		return false
	}
	heap.Remove(&q.heap, entry.index)
	delete(q.index, key)
	return true
}

// Len returns the number of entries in the queue.
func (q *Queue[K]) Len() int {
	return q.heap.Len()
}

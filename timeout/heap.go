// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package timeout implements the engine's timeout scheduler: a
// min-heap of (deadline, insertion-sequence, event) entries with O(1)
// lazy cancellation. The sift-up/sift-down shape follows the
// index-based priority queue idiom the pack already uses for
// transaction-fee ordering (see the daglabs-btcd mining package's
// txPriorityQueue); this one is kept generic over the event payload,
// which container/heap's interface{}-based Interface can't express,
// so the percolation is hand-rolled instead of going through
// container/heap.
package timeout

import "time"

// Entry is one scheduled deadline. Cancelled is not part of the
// ordering key: a cancelled entry still occupies its slot until it
// bubbles to the root, where DrainCancelledPrefix (or any operation
// that peeks/pops the root) discards it.
type Entry[E any] struct {
	Deadline  time.Time
	Seq       int64
	Event     E
	Cancelled bool
}

// Heap is a min-heap of Entry values ordered by (Deadline, Seq).
// It is not goroutine-safe, matching the rest of the engine.
type Heap[E any] struct {
	entries []*Entry[E]
	index   map[int64]int // seq -> position in entries
	nextSeq int64
}

// New returns an empty timeout heap.
func New[E any]() *Heap[E] {
	return &Heap[E]{index: map[int64]int{}}
}

// Len returns the number of entries in the heap, including any not
// yet lazily cancelled-out.
func (h *Heap[E]) Len() int {
	return len(h.entries)
}

// Add schedules event at deadline and returns the id later passed to
// Cancel.
func (h *Heap[E]) Add(deadline time.Time, event E) int64 {
	seq := h.nextSeq
	h.nextSeq++
	e := &Entry[E]{Deadline: deadline, Seq: seq, Event: event}
	h.entries = append(h.entries, e)
	idx := len(h.entries) - 1
	h.index[seq] = idx
	h.siftUp(idx)
	return seq
}

// Cancel marks id as cancelled. Cancelling an id that is unknown (never
// issued, already popped, or already cancelled) is a no-op, not an
// error — a round racing two code paths to cancel the same deadline
// should not have to track whether it already won.
func (h *Heap[E]) Cancel(id int64) {
	idx, ok := h.index[id]
	if !ok {
		return
	}
	h.entries[idx].Cancelled = true
}

// PeekEarliest drains any cancelled prefix and returns the earliest
// remaining entry without removing it.
func (h *Heap[E]) PeekEarliest() (*Entry[E], bool) {
	h.DrainCancelledPrefix()
	if len(h.entries) == 0 {
		return nil, false
	}
	return h.entries[0], true
}

// PopEarliest drains any cancelled prefix and removes and returns the
// earliest remaining entry.
func (h *Heap[E]) PopEarliest() (*Entry[E], bool) {
	h.DrainCancelledPrefix()
	if len(h.entries) == 0 {
		return nil, false
	}
	return h.popRoot(), true
}

// DrainCancelledPrefix pops cancelled entries off the root for as long
// as the root is cancelled. This is the only place lazy-cancelled
// entries are actually reclaimed.
func (h *Heap[E]) DrainCancelledPrefix() {
	for len(h.entries) > 0 && h.entries[0].Cancelled {
		h.popRoot()
	}
}

func (h *Heap[E]) popRoot() *Entry[E] {
	root := h.entries[0]
	last := len(h.entries) - 1
	h.swap(0, last)
	h.entries = h.entries[:last]
	delete(h.index, root.Seq)
	if len(h.entries) > 0 {
		h.siftDown(0)
	}
	return root
}

func (h *Heap[E]) less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.Deadline.Equal(b.Deadline) {
		return a.Seq < b.Seq
	}
	return a.Deadline.Before(b.Deadline)
}

func (h *Heap[E]) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.index[h.entries[i].Seq] = i
	h.index[h.entries[j].Seq] = j
}

func (h *Heap[E]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap[E]) siftDown(i int) {
	n := len(h.entries)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

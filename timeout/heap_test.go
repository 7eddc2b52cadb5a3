// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timeout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(s int) time.Time {
	return time.Unix(int64(s), 0)
}

func TestPopEarliestOrdersByDeadlineThenSeq(t *testing.T) {
	h := New[string]()
	h.Add(at(10), "b")
	h.Add(at(10), "a-later-seq")
	h.Add(at(5), "first")

	e, ok := h.PopEarliest()
	require.True(t, ok)
	require.Equal(t, "first", e.Event)

	e, ok = h.PopEarliest()
	require.True(t, ok)
	require.Equal(t, "b", e.Event, "same deadline, insertion order breaks the tie")

	e, ok = h.PopEarliest()
	require.True(t, ok)
	require.Equal(t, "a-later-seq", e.Event)

	_, ok = h.PopEarliest()
	require.False(t, ok)
}

func TestCancelIsLazyAndIdempotent(t *testing.T) {
	h := New[string]()
	id := h.Add(at(1), "cancel-me")
	h.Add(at(2), "keep-me")

	require.Equal(t, 2, h.Len(), "cancel does not remove the entry eagerly")

	h.Cancel(id)
	h.Cancel(id) // idempotent, no panic
	h.Cancel(9999) // unknown id, no panic

	e, ok := h.PeekEarliest()
	require.True(t, ok)
	require.Equal(t, "keep-me", e.Event, "peek skips the cancelled prefix")
	require.Equal(t, 1, h.Len(), "peek drained the cancelled entry")
}

func TestDrainCancelledPrefixStopsAtLiveRoot(t *testing.T) {
	h := New[string]()
	id1 := h.Add(at(1), "one")
	id2 := h.Add(at(2), "two")
	h.Add(at(3), "three")

	h.Cancel(id1)
	h.Cancel(id2)
	h.DrainCancelledPrefix()

	e, ok := h.PeekEarliest()
	require.True(t, ok)
	require.Equal(t, "three", e.Event)
	require.Equal(t, 1, h.Len())
}

func TestPeekDoesNotRemove(t *testing.T) {
	h := New[string]()
	h.Add(at(1), "only")

	_, ok := h.PeekEarliest()
	require.True(t, ok)
	require.Equal(t, 1, h.Len())

	_, ok = h.PopEarliest()
	require.True(t, ok)
	require.Equal(t, 0, h.Len())
}

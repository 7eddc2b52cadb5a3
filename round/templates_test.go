// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectDifferentUntilAllRequiresEveryParticipant(t *testing.T) {
	ps := newTestState([]string{"a", "b", "c"}, nil)
	r := NewCollectDifferentUntilAll(newTestBase(ps, 3), "collection")

	require.NoError(t, r.ProcessTx(testTx("a", -1, "1", true)))
	require.NoError(t, r.ProcessTx(testTx("b", -1, "2", true)))
	_, _, ok := r.EndBlock()
	require.False(t, ok)
	_, ok = r.MostVotedPayload()
	require.False(t, ok)

	require.NoError(t, r.ProcessTx(testTx("c", -1, "3", true)))
	_, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventDone, event)
	payloads, ok := r.MostVotedPayload()
	require.True(t, ok)
	require.Len(t, payloads, 3)
}

// threshold=3, requiredBlockConfirmations=2: EndBlock returns not-done
// at commit #k and #k+1, and fires done at #k+2.
func TestCollectDifferentUntilThresholdBlockConfirmationDelay(t *testing.T) {
	ps := newTestState([]string{"a", "b", "c", "d"}, nil)
	r := NewCollectDifferentUntilThreshold(newTestBase(ps, 4), "collection", 2)

	require.NoError(t, r.ProcessTx(testTx("a", -1, "1", true)))
	require.NoError(t, r.ProcessTx(testTx("b", -1, "2", true)))
	require.NoError(t, r.ProcessTx(testTx("c", -1, "3", true)))

	_, _, ok := r.EndBlock() // commit #k
	require.False(t, ok)
	_, _, ok = r.EndBlock() // commit #k+1
	require.False(t, ok)
	_, event, ok := r.EndBlock() // commit #k+2
	require.True(t, ok)
	require.Equal(t, EventDone, event)
}

func TestCollectDifferentUntilThresholdNoMajority(t *testing.T) {
	// Configured for N=4 (threshold 3), but the live participant
	// roster for this period has shrunk to 2 — no matter who else
	// submits, the round can never reach 3 distinct senders.
	ps := newTestState([]string{"a", "b"}, nil)
	r := NewCollectDifferentUntilThreshold(newTestBase(ps, 4), "collection", 0)

	require.NoError(t, r.ProcessTx(testTx("a", -1, "1", true)))
	_, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventNoMajority, event)
}

func TestCollectNonEmptyUntilThresholdFiresNoneWhenAllFiltered(t *testing.T) {
	ps := newTestState([]string{"a", "b", "c", "d"}, nil)
	r := NewCollectNonEmptyUntilThreshold(newTestBase(ps, 4), voteAttribute, "collection", "senders", 0)

	require.NoError(t, r.ProcessTx(testTx("a", -1, "", false)))
	require.NoError(t, r.ProcessTx(testTx("b", -1, "", false)))
	require.NoError(t, r.ProcessTx(testTx("c", -1, "", false)))

	next, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventNone, event)
	senders, _ := next.Get("senders")
	require.Len(t, senders, 3)
}

func TestCollectNonEmptyUntilThresholdFiresDoneWithFilteredSurvivors(t *testing.T) {
	ps := newTestState([]string{"a", "b", "c", "d"}, nil)
	r := NewCollectNonEmptyUntilThreshold(newTestBase(ps, 4), voteAttribute, "collection", "senders", 0)

	require.NoError(t, r.ProcessTx(testTx("a", -1, "X", true)))
	require.NoError(t, r.ProcessTx(testTx("b", -1, "", false)))
	require.NoError(t, r.ProcessTx(testTx("c", -1, "Y", true)))

	next, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventDone, event)
	collection, _ := next.Get("collection")
	require.Len(t, collection, 2)
}

func TestOnlyKeeperSendsScenario(t *testing.T) {
	ps := newTestState([]string{"a", "b"}, map[string]any{"most_voted_keeper_address": "a"})
	base := newTestBase(ps, 2)
	r := NewOnlyKeeperSends(base, voteAttribute, "payload")

	err := r.CheckTx(testTx("b", -1, "X", true))
	require.ErrorIs(t, err, ErrTxInvalid, "non-keeper sender")

	require.NoError(t, r.ProcessTx(testTx("a", -1, "X", true)))
	_, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventDone, event)

	err = r.ProcessTx(testTx("a", -1, "Y", true))
	require.ErrorIs(t, err, ErrInternal, "repeat submission from keeper")
}

func TestOnlyKeeperSendsFailsOnAbsentAttribute(t *testing.T) {
	ps := newTestState([]string{"a", "b"}, map[string]any{"most_voted_keeper_address": "a"})
	r := NewOnlyKeeperSends(newTestBase(ps, 2), voteAttribute, "payload")

	require.NoError(t, r.ProcessTx(testTx("a", -1, "", false)))
	_, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventFail, event)
}

func TestVotingFiresDoneNegativeNone(t *testing.T) {
	scenarios := []struct {
		name  string
		votes map[string]string // sender -> "true"/"false"/"none"
		event Event
	}{
		{"done", map[string]string{"a": "true", "b": "true", "c": "true"}, EventDone},
		{"negative", map[string]string{"a": "false", "b": "false", "c": "false"}, EventNegative},
		{"none", map[string]string{"a": "none", "b": "none", "c": "none"}, EventNone},
	}
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			ps := newTestState([]string{"a", "b", "c", "d"}, nil)
			r := NewVoting(newTestBase(ps, 4), voteAttribute, "collection")
			for sender, v := range s.votes {
				if v == "none" {
					require.NoError(t, r.ProcessTx(testTx(sender, -1, "", false)))
				} else {
					require.NoError(t, r.ProcessTx(testTx(sender, -1, v, true)))
				}
			}
			_, event, ok := r.EndBlock()
			require.True(t, ok)
			require.Equal(t, s.event, event)
		})
	}
}

func TestVotingNoMajority(t *testing.T) {
	ps := newTestState([]string{"a", "b", "c", "d"}, nil)
	r := NewVoting(newTestBase(ps, 4), voteAttribute, "collection")

	require.NoError(t, r.ProcessTx(testTx("a", -1, "true", true)))
	require.NoError(t, r.ProcessTx(testTx("b", -1, "false", true)))
	require.NoError(t, r.ProcessTx(testTx("c", -1, "", false)))
	_, event, ok := r.EndBlock()
	require.True(t, ok)
	require.Equal(t, EventNoMajority, event)
}

func TestDegenerateAlwaysErrorsInternal(t *testing.T) {
	r := NewDegenerate("sink")
	require.ErrorIs(t, r.CheckTx(nil), ErrInternal)
	require.ErrorIs(t, r.ProcessTx(nil), ErrInternal)
	_, _, ok := r.EndBlock()
	require.False(t, ok)
	kind, has := r.AllowedTxKind()
	require.False(t, has)
	require.Empty(t, kind)
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package statedb

import (
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func TestGetAndGetOr(t *testing.T) {
	db := New(0, map[string]any{"participants": []string{"0xA"}}, nil)

	v, ok := db.Get("participants")
	require.True(t, ok)
	require.Equal(t, []string{"0xA"}, v)

	_, ok = db.Get("missing")
	require.False(t, ok)

	require.Equal(t, "fallback", db.GetOr("missing", "fallback"))
}

func TestGetStrictMissingOrNil(t *testing.T) {
	db := New(0, map[string]any{"nilled": nil}, nil)

	_, err := db.GetStrict("absent")
	require.ErrorIs(t, err, ErrValueMissing)

	_, err = db.GetStrict("nilled")
	require.ErrorIs(t, err, ErrValueMissing)
}

func TestUpdateCurrentPeriodMerges(t *testing.T) {
	db := New(0, map[string]any{"a": 1}, nil)
	db.UpdateCurrentPeriod(map[string]any{"b": 2})

	a, _ := db.Get("a")
	b, _ := db.Get("b")
	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestAddNewPeriodSwitchesCurrentAndOverwrites(t *testing.T) {
	db := New(0, map[string]any{"a": 1}, []string{"a"})
	db.AddNewPeriod(1, map[string]any{"a": 1}, log.NewNoOpLogger())
	require.Equal(t, 1, db.CurrentPeriod())

	// Reusing period 1 overwrites rather than erroring.
	db.AddNewPeriod(1, map[string]any{"a": 99}, log.NewNoOpLogger())
	a, _ := db.Get("a")
	require.Equal(t, 99, a)
}

func TestIncrementRoundCountStartsBelowZero(t *testing.T) {
	db := New(0, nil, nil)
	require.Equal(t, RoundCountInit, db.RoundCount())
	require.Equal(t, int64(0), db.IncrementRoundCount())
	require.Equal(t, int64(1), db.IncrementRoundCount())
}

func TestCleanupRetainsMostRecentPeriods(t *testing.T) {
	db := New(0, nil, nil)
	for p := 1; p <= 4; p++ {
		db.AddNewPeriod(p, map[string]any{"p": p}, nil)
	}
	// periods 0..4 exist; keep only the last 2 (3 and 4).
	db.Cleanup(2)

	for _, p := range []int{0, 1, 2} {
		db.currentPeriod = p
		_, ok := db.Get("p")
		require.False(t, ok, "period %d should have been cleaned up", p)
	}
	for _, p := range []int{3, 4} {
		db.currentPeriod = p
		_, ok := db.Get("p")
		require.True(t, ok, "period %d should have survived cleanup", p)
	}
}

func TestCleanupDepthFlooredAtOne(t *testing.T) {
	db := New(0, nil, nil)
	db.AddNewPeriod(1, nil, nil)
	db.Cleanup(0)

	require.Len(t, db.data, 1)
	_, ok := db.data[0]
	require.False(t, ok, "period 0 should have been cleaned up")
	_, ok = db.data[1]
	require.True(t, ok, "period 1 should have survived cleanup")
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package statedb is the engine's one piece of authoritative, mutable
// state: a period-indexed map of key/value snapshots. A Round never
// touches it directly — only periodstate.PeriodState.Update does, so
// every write to the replicated state has a single chokepoint.
package statedb

import (
	"sort"

	"go.uber.org/zap"

	"github.com/luxfi/log"
)

// RoundCountInit is the value StateDB.RoundCount returns before the
// first call to IncrementRoundCount, chosen so that the first
// scheduled round lands at index 0.
const RoundCountInit int64 = -1

// StateDB is the replicated store the abci.App owns and the
// currently active round reads through PeriodState. It is not
// goroutine-safe: the engine is single-threaded by design (see
// AbciApp), and a reimplementation that parallelises the outer driver
// must serialize its own calls into StateDB.
type StateDB struct {
	currentPeriod int
	data          map[int]map[string]any
	// crossPeriodPersistedKeys is informational bookkeeping only:
	// carrying a key forward across a period boundary is the caller's
	// responsibility (see periodstate.PeriodState.Update), done by
	// including it in the kv passed to AddNewPeriod.
	crossPeriodPersistedKeys []string
	roundCount               int64
}

// New returns a StateDB seeded with the given initial period's data.
// crossPeriodPersistedKeys only records which keys the application
// intends to carry forward; StateDB itself never reads it.
func New(initialPeriod int, initialData map[string]any, crossPeriodPersistedKeys []string) *StateDB {
	data := map[int]map[string]any{}
	seed := make(map[string]any, len(initialData))
	for k, v := range initialData {
		seed[k] = v
	}
	data[initialPeriod] = seed
	keys := make([]string, len(crossPeriodPersistedKeys))
	copy(keys, crossPeriodPersistedKeys)
	return &StateDB{
		currentPeriod:            initialPeriod,
		data:                     data,
		crossPeriodPersistedKeys: keys,
		roundCount:               RoundCountInit,
	}
}

// CurrentPeriod returns the active period index.
func (s *StateDB) CurrentPeriod() int { return s.currentPeriod }

// RoundCount returns the index of the most recently scheduled round:
// RoundCountInit before any round, then 0, 1, 2, ... (one less than
// the number of rounds scheduled so far).
func (s *StateDB) RoundCount() int64 { return s.roundCount }

// CrossPeriodPersistedKeys returns the keys registered as carried
// forward across period boundaries.
func (s *StateDB) CrossPeriodPersistedKeys() []string {
	out := make([]string, len(s.crossPeriodPersistedKeys))
	copy(out, s.crossPeriodPersistedKeys)
	return out
}

// Get returns the value of key in the current period's snapshot, and
// whether it was present.
func (s *StateDB) Get(key string) (any, bool) {
	v, ok := s.data[s.currentPeriod][key]
	return v, ok
}

// GetOr returns the value of key in the current period's snapshot, or
// def if the key is absent.
func (s *StateDB) GetOr(key string, def any) any {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// GetStrict returns the value of key in the current period's
// snapshot, failing with ErrValueMissing if the key is absent or its
// value is nil.
func (s *StateDB) GetStrict(key string) (any, error) {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return nil, ErrValueMissing
	}
	return v, nil
}

// UpdateCurrentPeriod merges kv into the current period's snapshot.
func (s *StateDB) UpdateCurrentPeriod(kv map[string]any) {
	snapshot := s.data[s.currentPeriod]
	if snapshot == nil {
		snapshot = map[string]any{}
		s.data[s.currentPeriod] = snapshot
	}
	for k, v := range kv {
		snapshot[k] = v
	}
}

// AddNewPeriod switches the active period to p, seeding data[p] with
// kv. Reusing a period index that already has data is permitted — it
// overwrites the existing snapshot — matching the observed behaviour
// of the source this engine is modeled on; logger is used to surface
// that overwrite at warning level, since it is almost certainly not
// intentional and silently losing a period's history would make a
// replay bug undiagnosable. logger may be nil, in which case the
// overwrite is silent.
func (s *StateDB) AddNewPeriod(p int, kv map[string]any, logger log.Logger) {
	if _, exists := s.data[p]; exists && logger != nil {
		logger.Warn("overwriting existing period snapshot",
			zap.Int("period", p),
		)
	}
	seed := make(map[string]any, len(kv))
	for k, v := range kv {
		seed[k] = v
	}
	s.data[p] = seed
	s.currentPeriod = p
}

// IncrementRoundCount advances and returns the monotonic round
// counter, called once per schedule_round.
func (s *StateDB) IncrementRoundCount() int64 {
	s.roundCount++
	return s.roundCount
}

// Cleanup retains only the snapshots for the max(depth, 1) most recent
// period indices, discarding the rest.
func (s *StateDB) Cleanup(depth int) {
	if depth < 1 {
		depth = 1
	}
	if len(s.data) <= depth {
		return
	}
	periods := make([]int, 0, len(s.data))
	for p := range s.data {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	cutoff := periods[:len(periods)-depth]
	for _, p := range cutoff {
		delete(s.data, p)
	}
}

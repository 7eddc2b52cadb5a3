// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package periodstate is the read-only façade a Round sees over
// statedb: the same key/value snapshot, projected through named
// accessors for the fields every round template cares about
// (participants, keeper, randomness, vote maps) instead of raw string
// keys. A Round never holds a *statedb.StateDB directly — only a
// *PeriodState, and the only way to mutate the underlying store is
// through Update, which is the single chokepoint statedb.go's doc
// comment promises.
package periodstate

import (
	"math/big"
	"sort"
	"strings"

	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/set"
	"github.com/luxfi/periodengine/statedb"
)

// Well-known keys. Domain applications are free to read and write
// additional keys through Get/GetOr/GetStrict/Update; these are the
// ones every round template can rely on as a named projection.
const (
	KeyParticipants          = "participants"
	KeyAllParticipants       = "all_participants"
	KeyMostVotedRandomness   = "most_voted_randomness"
	KeyMostVotedKeeperAddr   = "most_voted_keeper_address"
	KeyBlacklistedKeepers    = "blacklisted_keepers"
)

// blacklistedKeeperAddrLen is the fixed width (spec: "42-char
// substrings") of one blacklisted keeper entry within the
// concatenated blacklist string — the length of a 0x-prefixed,
// 20-byte hex address.
const blacklistedKeeperAddrLen = 42

// maxRandomness256 is 2^256 - 1, the denominator KeeperRandomness
// divides the hex randomness value by to land in [0, 1].
var maxRandomness256 = func() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	return max.Sub(max, big.NewInt(1))
}()

// PeriodState is an immutable view over a StateDB snapshot. "Immutable"
// means the view itself never changes shape once constructed; Update
// returns a fresh PeriodState rather than mutating this one, even
// though both views share the same underlying StateDB (mutating it is
// the whole point of Update).
type PeriodState struct {
	db *statedb.StateDB
}

// New wraps db in a PeriodState view.
func New(db *statedb.StateDB) *PeriodState {
	return &PeriodState{db: db}
}

// Get returns the value of key in the current period's snapshot, and
// whether it was present.
func (ps *PeriodState) Get(key string) (any, bool) {
	return ps.db.Get(key)
}

// GetOr returns the value of key, or def if absent.
func (ps *PeriodState) GetOr(key string, def any) any {
	return ps.db.GetOr(key, def)
}

// GetStrict returns the value of key, failing with statedb.ErrValueMissing
// if it is absent or nil.
func (ps *PeriodState) GetStrict(key string) (any, error) {
	return ps.db.GetStrict(key)
}

// RoundCount returns the index of the most recently scheduled round
// (see statedb.StateDB.RoundCount).
func (ps *PeriodState) RoundCount() int64 {
	return ps.db.RoundCount()
}

// Period returns the active period index.
func (ps *PeriodState) Period() int {
	return ps.db.CurrentPeriod()
}

// Update merges kv into the current period (periodCount == nil) or
// opens a new period at *periodCount seeded with kv (periodCount != nil),
// and returns a fresh view over the same underlying StateDB. Carrying
// cross-period-persisted keys forward across a period boundary is the
// caller's responsibility: include them in kv.
func (ps *PeriodState) Update(periodCount *int, kv map[string]any, logger log.Logger) *PeriodState {
	if periodCount == nil {
		ps.db.UpdateCurrentPeriod(kv)
	} else {
		ps.db.AddNewPeriod(*periodCount, kv, logger)
	}
	return New(ps.db)
}

// Participants returns the non-empty set of agent addresses expected
// to participate in the current period, failing with
// statedb.ErrValueMissing if the key has never been set.
func (ps *PeriodState) Participants() (set.Set[string], error) {
	v, err := ps.GetStrict(KeyParticipants)
	if err != nil {
		return nil, err
	}
	addrs, _ := v.([]string)
	s := set.Of(addrs...)
	if s.Len() == 0 {
		return nil, statedb.ErrValueMissing
	}
	return s, nil
}

// AllParticipants returns the set of every address that has ever
// participated, defaulting to empty if unset (unlike Participants, an
// empty all-time roster is not itself an error).
func (ps *PeriodState) AllParticipants() set.Set[string] {
	v := ps.GetOr(KeyAllParticipants, []string{})
	addrs, _ := v.([]string)
	return set.Of(addrs...)
}

// SortedParticipants returns the current period's participants sorted
// case-insensitively by their hex address.
func (ps *PeriodState) SortedParticipants() ([]string, error) {
	participants, err := ps.Participants()
	if err != nil {
		return nil, err
	}
	sorted := participants.List()
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})
	return sorted, nil
}

// MostVotedRandomness returns the hex-encoded randomness value the
// current period's CollectSameUntilThreshold randomness round agreed
// on.
func (ps *PeriodState) MostVotedRandomness() (string, error) {
	v, err := ps.GetStrict(KeyMostVotedRandomness)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// KeeperRandomness interprets MostVotedRandomness as a 256-bit hex
// integer and returns it normalized into [0, 1] by dividing by
// 2^256 - 1 (a value of all 64 hex f digits gives exactly 1).
func (ps *PeriodState) KeeperRandomness() (float64, error) {
	hexVal, err := ps.MostVotedRandomness()
	if err != nil {
		return 0, err
	}
	n, ok := new(big.Int).SetString(hexVal, 16)
	if !ok {
		return 0, statedb.ErrValueMissing
	}
	ratio := new(big.Float).Quo(new(big.Float).SetInt(n), new(big.Float).SetInt(maxRandomness256))
	f, _ := ratio.Float64()
	return f, nil
}

// MostVotedKeeperAddress returns the address elected as keeper for the
// current period, and whether one has been elected yet.
func (ps *PeriodState) MostVotedKeeperAddress() (string, bool) {
	v, ok := ps.Get(KeyMostVotedKeeperAddr)
	if !ok || v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsKeeperSet reports whether a keeper has been elected for the
// current period.
func (ps *PeriodState) IsKeeperSet() bool {
	_, ok := ps.MostVotedKeeperAddress()
	return ok
}

// BlacklistedKeepers returns the set of keeper addresses that have
// been blacklisted, decoded from a single concatenated string of
// fixed-width address substrings.
func (ps *PeriodState) BlacklistedKeepers() set.Set[string] {
	v := ps.GetOr(KeyBlacklistedKeepers, "")
	blob, _ := v.(string)
	out := set.Set[string]{}
	for i := 0; i+blacklistedKeeperAddrLen <= len(blob); i += blacklistedKeeperAddrLen {
		out.Add(blob[i : i+blacklistedKeeperAddrLen])
	}
	return out
}

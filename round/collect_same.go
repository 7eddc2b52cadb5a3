// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// CollectSameUntilThreshold fires EventDone once some payload value
// (grouped by Attribute) reaches threshold occurrences, EventNone if
// the most-voted value turns out to be absent, and EventNoMajority if
// no value can reach threshold anymore.
type CollectSameUntilThreshold struct {
	CollectionRound
	Attribute     Attribute
	CollectionKey string
	SelectionKey  string
}

// NewCollectSameUntilThreshold constructs the round. attribute groups
// votes; collectionKey/selectionKey are the PeriodState keys EndBlock
// writes the raw collection and the winning value under, on Done/None.
func NewCollectSameUntilThreshold(base Base, attribute Attribute, collectionKey, selectionKey string) *CollectSameUntilThreshold {
	return &CollectSameUntilThreshold{
		CollectionRound: NewCollectionRound(base),
		Attribute:       attribute,
		CollectionKey:   collectionKey,
		SelectionKey:    selectionKey,
	}
}

// CheckTx implements Round.
func (r *CollectSameUntilThreshold) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.CheckPayload(tx)
}

// ProcessTx implements Round.
func (r *CollectSameUntilThreshold) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.ProcessPayload(tx)
}

type voteKey struct {
	value string
	none  bool
}

// EndBlock implements Round.
func (r *CollectSameUntilThreshold) EndBlock() (*periodstate.PeriodState, Event, bool) {
	counts := map[voteKey]int{}
	plainCounts := map[string]int{} // for MajorityPossible, which only knows string keys
	for _, p := range r.collection {
		value, present := r.Attribute(p)
		k := voteKey{value: value, none: !present}
		counts[k]++
		plainCounts[k.encode()]++
	}

	var (
		best      voteKey
		bestCount int
	)
	for k, c := range counts {
		if c > bestCount {
			best, bestCount = k, c
		}
	}

	threshold := r.Params.Threshold()
	if bestCount >= threshold {
		var selection any
		if !best.none {
			selection = best.value
		}
		next := r.PeriodState.Update(nil, map[string]any{
			r.CollectionKey: r.Collection(),
			r.SelectionKey:  selection,
		}, r.Logger)
		if best.none {
			return next, EventNone, true
		}
		return next, EventDone, true
	}

	if !MajorityPossible(plainCounts, r.Params.MaxParticipants) {
		return r.PeriodState, EventNoMajority, true
	}
	return nil, "", false
}

func (k voteKey) encode() string {
	if k.none {
		return "\x00none"
	}
	return k.value
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// CollectDifferentUntilAll accepts at most one payload per sender and
// fires EventDone once every participant has submitted — there is no
// partial-quorum path, unlike CollectDifferentUntilThreshold.
type CollectDifferentUntilAll struct {
	CollectionRound
	CollectionKey string
}

// NewCollectDifferentUntilAll constructs the round.
func NewCollectDifferentUntilAll(base Base, collectionKey string) *CollectDifferentUntilAll {
	return &CollectDifferentUntilAll{
		CollectionRound: NewCollectionRound(base),
		CollectionKey:   collectionKey,
	}
}

// CheckTx implements Round.
func (r *CollectDifferentUntilAll) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.CheckPayload(tx)
}

// ProcessTx implements Round.
func (r *CollectDifferentUntilAll) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.ProcessPayload(tx)
}

// MostVotedPayload returns the collection once every participant has
// submitted, and false otherwise — "most voted" here just means "the
// full set", since every sender's payload is distinct by construction.
func (r *CollectDifferentUntilAll) MostVotedPayload() (map[string]any, bool) {
	if len(r.collection) < r.Params.MaxParticipants {
		return nil, false
	}
	out := make(map[string]any, len(r.collection))
	for sender, p := range r.collection {
		out[sender] = p
	}
	return out, true
}

// EndBlock implements Round.
func (r *CollectDifferentUntilAll) EndBlock() (*periodstate.PeriodState, Event, bool) {
	if len(r.collection) < r.Params.MaxParticipants {
		return nil, "", false
	}
	next := r.PeriodState.Update(nil, map[string]any{
		r.CollectionKey: r.Collection(),
	}, r.Logger)
	return next, EventDone, true
}

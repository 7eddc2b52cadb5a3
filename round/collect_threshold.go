// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// CollectDifferentUntilThreshold accepts one payload per sender and
// reaches threshold when |collection| >= threshold(N), then waits an
// additional RequiredBlockConfirmations end_block calls before firing
// EventDone, giving slower agents a few more blocks to join before the
// round is locked in. EventNoMajority fires if majority becomes
// unreachable before threshold is ever met.
type CollectDifferentUntilThreshold struct {
	CollectionRound
	CollectionKey              string
	RequiredBlockConfirmations int
	blockConfirmations         int
}

// NewCollectDifferentUntilThreshold constructs the round.
func NewCollectDifferentUntilThreshold(base Base, collectionKey string, requiredBlockConfirmations int) *CollectDifferentUntilThreshold {
	return &CollectDifferentUntilThreshold{
		CollectionRound:            NewCollectionRound(base),
		CollectionKey:              collectionKey,
		RequiredBlockConfirmations: requiredBlockConfirmations,
	}
}

// CheckTx implements Round.
func (r *CollectDifferentUntilThreshold) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.CheckPayload(tx)
}

// ProcessTx implements Round.
func (r *CollectDifferentUntilThreshold) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.ProcessPayload(tx)
}

// EndBlock implements Round.
func (r *CollectDifferentUntilThreshold) EndBlock() (*periodstate.PeriodState, Event, bool) {
	n := len(r.collection)
	threshold := r.Params.Threshold()

	if n >= threshold {
		r.blockConfirmations++
		if r.blockConfirmations <= r.RequiredBlockConfirmations {
			return nil, "", false
		}
		next := r.PeriodState.Update(nil, map[string]any{
			r.CollectionKey: r.Collection(),
		}, r.Logger)
		return next, EventDone, true
	}

	// The pool of senders that could still submit is bounded by how
	// many of the configured participants are actually known for this
	// period, not just the configured N — a period whose live roster
	// has shrunk below threshold can never reach it.
	remaining := r.Params.MaxParticipants - n
	if participants, err := r.PeriodState.Participants(); err == nil && participants.Len()-n < remaining {
		remaining = participants.Len() - n
	}
	if remaining < 0 {
		remaining = 0
	}
	if remaining+n < threshold {
		return r.PeriodState, EventNoMajority, true
	}
	return nil, "", false
}

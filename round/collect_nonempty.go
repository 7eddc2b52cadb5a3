// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// CollectNonEmptyUntilThreshold behaves exactly like
// CollectDifferentUntilThreshold, except that once the block
// confirmation delay elapses it filters out any collected payload
// whose Attribute is absent, and fires EventNone instead of EventDone
// if nothing survives the filter.
type CollectNonEmptyUntilThreshold struct {
	CollectionRound
	Attribute                  Attribute
	CollectionKey              string
	SendersKey                 string
	RequiredBlockConfirmations int
	blockConfirmations         int
}

// NewCollectNonEmptyUntilThreshold constructs the round.
func NewCollectNonEmptyUntilThreshold(base Base, attribute Attribute, collectionKey, sendersKey string, requiredBlockConfirmations int) *CollectNonEmptyUntilThreshold {
	return &CollectNonEmptyUntilThreshold{
		CollectionRound:            NewCollectionRound(base),
		Attribute:                  attribute,
		CollectionKey:              collectionKey,
		SendersKey:                 sendersKey,
		RequiredBlockConfirmations: requiredBlockConfirmations,
	}
}

// CheckTx implements Round.
func (r *CollectNonEmptyUntilThreshold) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.CheckPayload(tx)
}

// ProcessTx implements Round.
func (r *CollectNonEmptyUntilThreshold) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.ProcessPayload(tx)
}

// EndBlock implements Round.
func (r *CollectNonEmptyUntilThreshold) EndBlock() (*periodstate.PeriodState, Event, bool) {
	n := len(r.collection)
	threshold := r.Params.Threshold()

	if n >= threshold {
		r.blockConfirmations++
		if r.blockConfirmations <= r.RequiredBlockConfirmations {
			return nil, "", false
		}

		senders := make([]string, 0, n)
		filtered := make([]*payload.Payload, 0, n)
		for sender, p := range r.collection {
			senders = append(senders, sender)
			if _, present := r.Attribute(p); present {
				filtered = append(filtered, p)
			}
		}
		next := r.PeriodState.Update(nil, map[string]any{
			r.CollectionKey: filtered,
			r.SendersKey:    senders,
		}, r.Logger)
		if len(filtered) == 0 {
			return next, EventNone, true
		}
		return next, EventDone, true
	}

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

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// votingTrue and votingFalse are the two Attribute values Voting
// recognizes; an absent Attribute is the third, "None", bucket.
const (
	votingTrue  = "true"
	votingFalse = "false"
)

// Voting is a CollectionRound whose per-sender vote is grouped into
// exactly three buckets by Attribute: true, false, and absent/None.
// It fires EventDone/EventNegative/EventNone depending which bucket
// first reaches threshold, and EventNoMajority if none of the three
// can anymore.
type Voting struct {
	CollectionRound
	Attribute     Attribute
	CollectionKey string
}

// NewVoting constructs the round.
func NewVoting(base Base, attribute Attribute, collectionKey string) *Voting {
	return &Voting{
		CollectionRound: NewCollectionRound(base),
		Attribute:       attribute,
		CollectionKey:   collectionKey,
	}
}

// CheckTx implements Round.
func (r *Voting) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.CheckPayload(tx)
}

// ProcessTx implements Round.
func (r *Voting) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	return r.ProcessPayload(tx)
}

// EndBlock implements Round.
func (r *Voting) EndBlock() (*periodstate.PeriodState, Event, bool) {
	var trueCount, falseCount, noneCount int
	for _, p := range r.collection {
		value, present := r.Attribute(p)
		switch {
		case !present:
			noneCount++
		case value == votingTrue:
			trueCount++
		case value == votingFalse:
			falseCount++
		}
	}

	threshold := r.Params.Threshold()
	switch {
	case trueCount >= threshold:
		return r.finish(), EventDone, true
	case falseCount >= threshold:
		return r.finish(), EventNegative, true
	case noneCount >= threshold:
		return r.finish(), EventNone, true
	}

	counts := map[string]int{votingTrue: trueCount, votingFalse: falseCount, "none": noneCount}
	if !MajorityPossible(counts, r.Params.MaxParticipants) {
		return r.PeriodState, EventNoMajority, true
	}
	return nil, "", false
}

func (r *Voting) finish() *periodstate.PeriodState {
	return r.PeriodState.Update(nil, map[string]any{
		r.CollectionKey: r.Collection(),
	}, r.Logger)
}

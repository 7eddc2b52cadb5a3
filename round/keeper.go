// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"fmt"

	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// OnlyKeeperSends accepts at most one payload, from the sender equal
// to PeriodState.MostVotedKeeperAddress. Once accepted, EndBlock fires
// EventDone if the payload's Attribute is present, or EventFail if the
// keeper explicitly submitted an absent value — a signal the keeper
// was unable to complete its off-chain work.
type OnlyKeeperSends struct {
	Base
	Attribute  Attribute
	PayloadKey string

	keeperPayload *payload.Payload
}

// NewOnlyKeeperSends constructs the round.
func NewOnlyKeeperSends(base Base, attribute Attribute, payloadKey string) *OnlyKeeperSends {
	return &OnlyKeeperSends{Base: base, Attribute: attribute, PayloadKey: payloadKey}
}

func (r *OnlyKeeperSends) validate(tx *txn.Transaction) error {
	p := tx.Payload
	participants, err := r.PeriodState.Participants()
	if err != nil {
		return err
	}
	if !participants.Contains(p.Sender) {
		return fmt.Errorf("sender %q is not a participant", p.Sender)
	}
	keeper, ok := r.PeriodState.MostVotedKeeperAddress()
	if !ok || p.Sender != keeper {
		return fmt.Errorf("sender %q is not the elected keeper", p.Sender)
	}
	if r.keeperPayload != nil {
		return fmt.Errorf("keeper already submitted this round")
	}
	return nil
}

// CheckTx implements Round.
func (r *OnlyKeeperSends) CheckTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	if err := r.validate(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrTxInvalid, err)
	}
	return nil
}

// ProcessTx implements Round.
func (r *OnlyKeeperSends) ProcessTx(tx *txn.Transaction) error {
	if err := r.CheckTxKind(tx); err != nil {
		return err
	}
	if err := r.validate(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	r.keeperPayload = tx.Payload
	return nil
}

// EndBlock implements Round.
func (r *OnlyKeeperSends) EndBlock() (*periodstate.PeriodState, Event, bool) {
	if r.keeperPayload == nil {
		return nil, "", false
	}
	if _, present := r.Attribute(r.keeperPayload); !present {
		return r.PeriodState, EventFail, true
	}
	next := r.PeriodState.Update(nil, map[string]any{
		r.PayloadKey: r.keeperPayload,
	}, r.Logger)
	return next, EventDone, true
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// Base carries the fields the kernel contract says every round must
// declare, plus what a template needs to read the world: the period
// state it was scheduled with, the consensus parameters, and the
// previous round's allowed tx kind (so a round sharing a payload kind
// with its predecessor doesn't reject its own stragglers as late).
//
// Base does not implement Round itself — RoundID/AllowedTxKind are
// plain field accessors a concrete template re-exposes, and
// CheckTx/ProcessTx/EndBlock are each template's own, built out of the
// CheckTxKind helper below plus the template's
// CheckPayload/ProcessPayload/EndBlock.
type Base struct {
	RoundIDValue string

	allowedTxKind    payload.TxKind
	hasAllowedTxKind bool

	prevAllowedTxKind    payload.TxKind
	hasPrevAllowedTxKind bool

	PayloadAttribute string

	PeriodState *periodstate.PeriodState
	Params      config.ConsensusParams
	Logger      log.Logger
}

// NewBase constructs the shared round fields. hasAllowedTxKind=false
// models allowed_tx_kind=None: a round that accepts no transactions at
// all (the Degenerate sink).
func NewBase(
	roundID string,
	allowedTxKind payload.TxKind,
	hasAllowedTxKind bool,
	payloadAttribute string,
	prevAllowedTxKind payload.TxKind,
	hasPrevAllowedTxKind bool,
	ps *periodstate.PeriodState,
	params config.ConsensusParams,
	logger log.Logger,
) Base {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return Base{
		RoundIDValue:          roundID,
		allowedTxKind:         allowedTxKind,
		hasAllowedTxKind:      hasAllowedTxKind,
		prevAllowedTxKind:     prevAllowedTxKind,
		hasPrevAllowedTxKind:  hasPrevAllowedTxKind,
		PayloadAttribute:      payloadAttribute,
		PeriodState:           ps,
		Params:                params,
		Logger:                logger,
	}
}

// RoundID returns the round's diagnostic name.
func (b *Base) RoundID() string { return b.RoundIDValue }

// AllowedTxKind returns the tx kind this round accepts, and false if
// it accepts none.
func (b *Base) AllowedTxKind() (payload.TxKind, bool) {
	return b.allowedTxKind, b.hasAllowedTxKind
}

// CurrentPeriodState returns the PeriodState this round was scheduled
// with.
func (b *Base) CurrentPeriodState() *periodstate.PeriodState {
	return b.PeriodState
}

// CheckTxKind is the shared prefix of every template's CheckTx: it
// fails with ErrLateArriving for a straggler from the previous round's
// tx kind, and ErrTxKindUnknown for anything else that doesn't match
// AllowedTxKind.
func (b *Base) CheckTxKind(tx *txn.Transaction) error {
	kind := tx.Payload.TxKind()
	if b.hasPrevAllowedTxKind && kind == b.prevAllowedTxKind {
		return ErrLateArriving
	}
	if !b.hasAllowedTxKind || kind != b.allowedTxKind {
		return ErrTxKindUnknown
	}
	return nil
}

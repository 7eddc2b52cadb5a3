// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package round is the abstract round contract every application
// round implements, plus the library of generic round patterns
// (collect-same, collect-different, voting, single-keeper) that most
// applications can build their rounds out of without writing their
// own check_tx/process_tx plumbing.
//
// Round templates are capability combinators rather than a mix-in
// class hierarchy: each template embeds Base for the shared fields and
// checks, and implements CheckPayload/ProcessPayload/EndBlock itself —
// there is no virtual dispatch, every concrete round type satisfies
// Round directly.
package round

import (
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// Event is a domain-defined tag driving the application's transition
// function: "done", "no_majority", "none", "negative", "fail", plus
// whatever timeout event names the application declares.
type Event string

// The generic outcomes every round template in this package can fire.
// A round class is free to route these to different next rounds in its
// own slot of the transition function; the tag itself is shared
// because these five are named literally rather than left
// application-defined.
const (
	EventDone       Event = "done"
	EventNone       Event = "none"
	EventNegative   Event = "negative"
	EventNoMajority Event = "no_majority"
	EventFail       Event = "fail"
)

// Attribute extracts the named payload field a round groups votes by.
// It returns the extracted value and whether the field was present —
// an absent/None attribute is itself a valid vote in several
// templates (CollectSameUntilThreshold, Voting), so callers must not
// collapse "absent" and "empty string" into the same case.
type Attribute func(p *payload.Payload) (value string, present bool)

// Round is the contract every round class satisfies: which tx kind it
// accepts, and how it checks/processes transactions and decides
// whether the block being built moves the engine to a new state.
type Round interface {
	// RoundID names the round for logging and diagnostics.
	RoundID() string
	// AllowedTxKind returns the tx kind this round accepts, and false
	// if the round accepts no transactions at all (the Degenerate sink).
	AllowedTxKind() (payload.TxKind, bool)
	// CurrentPeriodState returns the PeriodState this round was
	// scheduled with, used by AbciApp.ProcessEvent when a round fires
	// an event without an explicit result (e.g. a timeout).
	CurrentPeriodState() *periodstate.PeriodState
	// CheckTx is the recoverable, mempool-facing check: it must not
	// mutate round state. Errors here are rejections, not faults.
	CheckTx(tx *txn.Transaction) error
	// ProcessTx assumes tx already passed CheckTx (the consensus layer
	// already accepted it); any failure here is an engine bug.
	ProcessTx(tx *txn.Transaction) error
	// EndBlock inspects the round's accumulated state and, if the round
	// is ready to conclude, returns the PeriodState it produced and the
	// Event to fire. ok is false while the round should keep collecting.
	EndBlock() (next *periodstate.PeriodState, event Event, ok bool)
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/txn"
)

// Degenerate is the terminal sink round: it accepts no transactions
// and never completes. It exists purely as a final state's round
// class in a transition function: the executor schedules it when a
// transition reaches that final state, and any transaction delivered
// to it afterwards is rejected with ErrInternal.
type Degenerate struct {
	Base
}

// NewDegenerate constructs the sink round.
func NewDegenerate(roundID string) *Degenerate {
	return &Degenerate{Base: NewBase(roundID, "", false, "", "", false, nil, config.ConsensusParams{}, nil)}
}

// CheckTx implements Round; always ErrInternal.
func (r *Degenerate) CheckTx(*txn.Transaction) error { return ErrInternal }

// ProcessTx implements Round; always ErrInternal.
func (r *Degenerate) ProcessTx(*txn.Transaction) error { return ErrInternal }

// EndBlock implements Round; always ErrInternal in spirit — Degenerate
// never produces a transition, so callers must not invoke it expecting
// one. It returns ok=false to keep the Round interface's shape rather
// than panicking, but scheduling a Degenerate round at all only
// happens once the engine has already reached a final state.
func (r *Degenerate) EndBlock() (*periodstate.PeriodState, Event, bool) {
	return nil, "", false
}

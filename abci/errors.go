// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import "errors"

// Static-checker errors, returned by Validate (and therefore by
// NewApp, which runs it before accepting a Descriptor).
var (
	ErrMissingInitialRound = errors.New("abci: descriptor has no initial round class or transition function")
	ErrUnknownInitialRound = errors.New("abci: initial round class is not a declared state")
	ErrUnknownInitialState = errors.New("abci: initial_states member is not a declared state")
	ErrInitialIsFinal      = errors.New("abci: a state cannot be both initial and final")
	ErrUnknownFinalState   = errors.New("abci: final_states member is not a declared state")
	ErrFinalHasTransitions = errors.New("abci: final state has outgoing transitions")
	ErrFinalNotDegenerate  = errors.New("abci: final state round class is not Degenerate")
	ErrTooManyTimeoutEdges = errors.New("abci: non-final state has more than one timeout-typed outgoing event")
	ErrNoNonTimeoutEdges   = errors.New("abci: non-final state has no non-timeout outgoing events")
)

// ErrEngineFinished is returned when a caller tries to drive the
// engine (App.CheckTx, App.ProcessTx, the period driver's BeginBlock)
// after it has terminated (App.IsFinished).
var ErrEngineFinished = errors.New("abci: engine has already terminated")

// ErrInconsistentHistory is returned by Cleanup if previousRounds and
// roundResults ever desynchronize in length (ProcessEvent only logs
// it) — an engine invariant violation, not a recoverable condition.
var ErrInconsistentHistory = errors.New("abci: previous-rounds and round-results history diverged")

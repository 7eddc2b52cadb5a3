// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package abci holds the transition function, schedules rounds,
// routes events, and wires timeouts: the AbciApp executor (component
// I) and the static checker that validates a transition function's
// shape before the executor will accept it (component K).
package abci

import (
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/round"
)

// RoundClass identifies a round type the way the transition function
// keys on a class object: by identity, not by value. Go has no
// runtime class token, so RoundClass borrows the same unexported-
// pointer idiom context.Context uses for its keys — two RoundClass
// values are "the same round class" exactly when they are the same
// *RoundClass.
type RoundClass struct {
	name             string
	allowedTxKind    payload.TxKind
	hasAllowedTxKind bool
	degenerate       bool
	newRound         func(ps *periodstate.PeriodState, params config.ConsensusParams, prevAllowedTxKind payload.TxKind, hasPrevAllowedTxKind bool, logger log.Logger) round.Round
}

// NewRoundClass declares a round class: a name for diagnostics, the
// tx_kind it accepts (hasAllowedTxKind=false for none), and the
// constructor the executor calls when scheduling an instance.
func NewRoundClass(
	name string,
	allowedTxKind payload.TxKind,
	hasAllowedTxKind bool,
	newRound func(ps *periodstate.PeriodState, params config.ConsensusParams, prevAllowedTxKind payload.TxKind, hasPrevAllowedTxKind bool, logger log.Logger) round.Round,
) *RoundClass {
	return &RoundClass{
		name:             name,
		allowedTxKind:    allowedTxKind,
		hasAllowedTxKind: hasAllowedTxKind,
		newRound:         newRound,
	}
}

// NewDegenerateRoundClass declares a terminal sink round class: no
// transactions accepted, and the static checker requires every final
// state to be one of these.
func NewDegenerateRoundClass(name string) *RoundClass {
	return &RoundClass{
		name:       name,
		degenerate: true,
		newRound: func(ps *periodstate.PeriodState, params config.ConsensusParams, _ payload.TxKind, _ bool, logger log.Logger) round.Round {
			base := round.NewBase(name, "", false, "", "", false, ps, params, logger)
			return &round.Degenerate{Base: base}
		},
	}
}

// Name returns the round class's diagnostic name.
func (c *RoundClass) Name() string { return c.name }

// Descriptor is the static, immutable registration every AbciApp is
// built from: the transition function plus its timeout table and
// cross-period-persisted keys.
type Descriptor struct {
	InitialRoundClass        *RoundClass
	InitialStates            []*RoundClass
	FinalStates              []*RoundClass
	TransitionFunction       map[*RoundClass]map[round.Event]*RoundClass
	EventToTimeout           map[round.Event]time.Duration
	CrossPeriodPersistedKeys []string
	// MaxHistory bounds PreviousRounds/RoundResults; HistoryDefault is
	// used when unset.
	MaxHistory int
}

const HistoryDefault = 50

// states returns every round class the descriptor mentions anywhere:
// as the initial class, an initial/final state, a transition-function
// key, or a transition-function target.
func (d *Descriptor) states() map[*RoundClass]struct{} {
	out := map[*RoundClass]struct{}{}
	if d.InitialRoundClass != nil {
		out[d.InitialRoundClass] = struct{}{}
	}
	for _, s := range d.InitialStates {
		out[s] = struct{}{}
	}
	for _, s := range d.FinalStates {
		out[s] = struct{}{}
	}
	for from, edges := range d.TransitionFunction {
		out[from] = struct{}{}
		for _, to := range edges {
			out[to] = struct{}{}
		}
	}
	return out
}

// AllRoundClasses returns every round class the descriptor mentions.
func (d *Descriptor) AllRoundClasses() []*RoundClass {
	states := d.states()
	out := make([]*RoundClass, 0, len(states))
	for s := range states {
		out = append(out, s)
	}
	return out
}

// AllRounds is an alias for AllRoundClasses, named after the original
// introspection helper (get_all_rounds) this mirrors.
func (d *Descriptor) AllRounds() []*RoundClass { return d.AllRoundClasses() }

// AllEvents returns every event named anywhere in the transition
// function, deduplicated.
func (d *Descriptor) AllEvents() []round.Event {
	seen := map[round.Event]struct{}{}
	out := []round.Event{}
	for _, edges := range d.TransitionFunction {
		for ev := range edges {
			if _, ok := seen[ev]; !ok {
				seen[ev] = struct{}{}
				out = append(out, ev)
			}
		}
	}
	return out
}

func contains(classes []*RoundClass, target *RoundClass) bool {
	for _, c := range classes {
		if c == target {
			return true
		}
	}
	return false
}

// Validate runs the static checker over a descriptor, rejecting any
// shape that would leave the executor unable to make progress or
// terminate cleanly.
func Validate(d *Descriptor) error {
	if d.InitialRoundClass == nil || d.TransitionFunction == nil {
		return ErrMissingInitialRound
	}

	states := d.states()
	if _, ok := states[d.InitialRoundClass]; !ok {
		return ErrUnknownInitialRound
	}
	for _, s := range d.InitialStates {
		if _, ok := states[s]; !ok {
			return ErrUnknownInitialState
		}
	}

	initialSet := append([]*RoundClass{d.InitialRoundClass}, d.InitialStates...)
	for _, s := range initialSet {
		if contains(d.FinalStates, s) {
			return ErrInitialIsFinal
		}
	}

	for _, f := range d.FinalStates {
		if _, ok := states[f]; !ok {
			return ErrUnknownFinalState
		}
		if len(d.TransitionFunction[f]) > 0 {
			return ErrFinalHasTransitions
		}
		if !f.degenerate {
			return ErrFinalNotDegenerate
		}
	}

	for s := range states {
		if contains(d.FinalStates, s) {
			continue
		}
		var timeoutEdges, nonTimeoutEdges int
		for ev := range d.TransitionFunction[s] {
			if _, isTimeout := d.EventToTimeout[ev]; isTimeout {
				timeoutEdges++
			} else {
				nonTimeoutEdges++
			}
		}
		if timeoutEdges >= 2 {
			return ErrTooManyTimeoutEdges
		}
		if nonTimeoutEdges == 0 {
			return ErrNoNonTimeoutEdges
		}
	}

	return nil
}

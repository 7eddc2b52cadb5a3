// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/round"
	"github.com/luxfi/periodengine/statedb"
	"github.com/luxfi/periodengine/timeout"
	"github.com/luxfi/periodengine/txn"
)

// App executes a Descriptor's transition function against a live
// StateDB: it schedules the current round, routes the events that
// round's EndBlock fires, and arms/cancels the timeout heap the period
// driver drains on every begin_block.
type App struct {
	descriptor *Descriptor
	db         *statedb.StateDB
	params     config.ConsensusParams
	logger     log.Logger
	metrics    *Metrics

	currentRoundClass *RoundClass
	currentRound      round.Round
	lastRoundClass    *RoundClass

	previousRounds []round.Round
	roundResults   []*periodstate.PeriodState

	lastTimestamp         time.Time
	hasLastTimestamp      bool
	currentTimeoutEntries []int64
	timeouts              *timeout.Heap[round.Event]
}

// NewApp validates descriptor and, if it passes, constructs an App
// seeded with db and schedules the initial round.
func NewApp(descriptor *Descriptor, db *statedb.StateDB, params config.ConsensusParams, logger log.Logger, metrics *Metrics) (*App, error) {
	if err := Validate(descriptor); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	app := &App{
		descriptor: descriptor,
		db:         db,
		params:     params,
		logger:     logger,
		metrics:    metrics,
		timeouts:   timeout.New[round.Event](),
	}
	app.scheduleRound(descriptor.InitialRoundClass)
	return app, nil
}

// IsFinished reports whether the engine has terminated: ProcessEvent
// received an event with no transition-function entry for the current
// round class. Reaching a declared final state schedules that state's
// Degenerate round and does not by itself make IsFinished true.
func (a *App) IsFinished() bool {
	return a.currentRoundClass == nil
}

// CurrentRound returns the round currently scheduled, or nil if the
// engine has finished.
func (a *App) CurrentRound() round.Round { return a.currentRound }

// LastRoundClass returns the round class scheduled immediately before
// the current one, or nil before the first schedule_round call.
func (a *App) LastRoundClass() *RoundClass { return a.lastRoundClass }

// HistoryDepth returns the descriptor's configured bound for
// PreviousRounds/RoundResults, falling back to HistoryDefault when the
// descriptor leaves MaxHistory unset.
func (a *App) HistoryDepth() int {
	if a.descriptor.MaxHistory > 0 {
		return a.descriptor.MaxHistory
	}
	return HistoryDefault
}

// CheckTx delegates to the current round, failing with
// ErrEngineFinished if the engine has already terminated.
func (a *App) CheckTx(tx *txn.Transaction) error {
	if a.IsFinished() {
		return ErrEngineFinished
	}
	return a.currentRound.CheckTx(tx)
}

// ProcessTx delegates to the current round, failing with
// ErrEngineFinished if the engine has already terminated.
func (a *App) ProcessTx(tx *txn.Transaction) error {
	if a.IsFinished() {
		return ErrEngineFinished
	}
	return a.currentRound.ProcessTx(tx)
}

// EndBlockAndAdvance asks the current round whether the block just
// built concludes it, and if so, routes the resulting event through
// ProcessEvent. It is the hook the period driver's commit phase calls.
func (a *App) EndBlockAndAdvance() {
	if a.IsFinished() {
		return
	}
	result, event, ok := a.currentRound.EndBlock()
	if !ok {
		return
	}
	a.metrics.ObserveRoundEnd(a.currentRoundClass.Name(), string(event))
	a.ProcessEvent(event, result)
}

// scheduleRound cancels the outgoing round's timeouts, resolves the
// PeriodState the new round starts from, computes prevAllowedTxKind,
// instantiates the round, arms its timeout edges, and advances the
// round counter.
func (a *App) scheduleRound(next *RoundClass) {
	for _, id := range a.currentTimeoutEntries {
		a.timeouts.Cancel(id)
	}
	a.currentTimeoutEntries = nil

	lastResult := a.initialPeriodState()
	if n := len(a.roundResults); n > 0 {
		lastResult = a.roundResults[n-1]
	}

	var prevAllowedTxKind payload.TxKind
	var hasPrevAllowedTxKind bool
	if a.currentRoundClass != nil {
		outKind, hasOutKind := a.currentRoundClass.allowedTxKind, a.currentRoundClass.hasAllowedTxKind
		if hasOutKind && (!next.hasAllowedTxKind || outKind != next.allowedTxKind) {
			prevAllowedTxKind, hasPrevAllowedTxKind = outKind, true
		}
	}

	a.lastRoundClass = a.currentRoundClass
	a.currentRoundClass = next
	a.currentRound = next.newRound(lastResult, a.params, prevAllowedTxKind, hasPrevAllowedTxKind, a.logger)

	if a.hasLastTimestamp {
		for event, delay := range a.descriptor.EventToTimeout {
			if _, ok := a.descriptor.TransitionFunction[next][event]; ok {
				id := a.timeouts.Add(a.lastTimestamp.Add(delay), event)
				a.currentTimeoutEntries = append(a.currentTimeoutEntries, id)
			}
		}
	}

	a.db.IncrementRoundCount()
	a.metrics.ObserveRoundScheduled(next.Name())
	a.metrics.roundCount.Set(float64(a.db.RoundCount()))
	a.logger.Info("scheduled round",
		zap.String("round", next.Name()),
		zap.Int64("round_count", a.db.RoundCount()),
	)
}

func (a *App) initialPeriodState() *periodstate.PeriodState {
	return periodstate.New(a.db)
}

// ProcessEvent records the round just concluded into history, looks up
// the transition function entry for event, and either schedules the
// next round or marks the engine terminated.
func (a *App) ProcessEvent(event round.Event, result *periodstate.PeriodState) {
	if a.IsFinished() {
		a.logger.Warn("process_event called after engine termination", zap.String("event", string(event)))
		return
	}

	next, ok := a.descriptor.TransitionFunction[a.currentRoundClass][event]

	a.previousRounds = append(a.previousRounds, a.currentRound)
	if result == nil {
		result = a.currentRound.CurrentPeriodState()
	}
	a.roundResults = append(a.roundResults, result)
	a.enforceHistoryInvariant()

	if !ok {
		a.logger.Warn("no transition registered for event; engine reaching dead end",
			zap.String("round", a.currentRoundClass.Name()),
			zap.String("event", string(event)),
		)
		a.currentRoundClass = nil
		a.currentRound = nil
		return
	}
	a.scheduleRound(next)
}

// UpdateTime drains and fires every timeout whose deadline has passed,
// then advances the clock.
//
// When a timeout fires, last_timestamp is set to the incoming block
// timestamp passed to this call, not to the deadline that fired — a
// deliberately preserved quirk: deadlines armed while handling the
// fired timeout are measured from the newer time, not from the stale
// deadline.
func (a *App) UpdateTime(timestamp time.Time) {
	a.timeouts.DrainCancelledPrefix()
	if a.timeouts.Len() == 0 {
		a.lastTimestamp, a.hasLastTimestamp = timestamp, true
		return
	}

	for {
		entry, ok := a.timeouts.PeekEarliest()
		if !ok || entry.Deadline.After(timestamp) {
			break
		}
		a.timeouts.PopEarliest()
		a.lastTimestamp, a.hasLastTimestamp = timestamp, true
		a.metrics.ObserveTimeoutFired(a.currentRoundClass.Name(), string(entry.Event))
		a.ProcessEvent(entry.Event, nil)
		a.timeouts.DrainCancelledPrefix()
		if a.timeouts.Len() == 0 || a.IsFinished() {
			break
		}
	}
	a.lastTimestamp, a.hasLastTimestamp = timestamp, true
}

// enforceHistoryInvariant logs if previousRounds and roundResults have
// ever diverged in length; Cleanup is what actually surfaces this as
// ErrInconsistentHistory to a caller.
func (a *App) enforceHistoryInvariant() {
	if len(a.previousRounds) != len(a.roundResults) {
		a.logger.Error("previous-rounds and round-results history diverged",
			zap.Int("previous_rounds", len(a.previousRounds)),
			zap.Int("round_results", len(a.roundResults)),
		)
	}
}

// Cleanup truncates the bounded history slices to the last
// max(depth, 1) entries and delegates to the underlying StateDB,
// failing with ErrInconsistentHistory if the two history slices have
// ever diverged in length.
func (a *App) Cleanup(depth int) error {
	if len(a.previousRounds) != len(a.roundResults) {
		return ErrInconsistentHistory
	}
	if depth < 1 {
		depth = 1
	}
	if len(a.previousRounds) > depth {
		a.previousRounds = a.previousRounds[len(a.previousRounds)-depth:]
		a.roundResults = a.roundResults[len(a.roundResults)-depth:]
	}
	a.db.Cleanup(depth)
	return nil
}

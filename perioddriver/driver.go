// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package perioddriver translates the ABCI begin_block/deliver_tx/
// end_block/commit lifecycle into calls against the consensus engine
// (abci.App): a three-phase machine gating which of those four calls
// is legal at any moment.
package perioddriver

import (
	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/abci"
	"github.com/luxfi/periodengine/chain"
	"github.com/luxfi/periodengine/txn"
)

// Phase names a state of the begin_block/deliver_tx/end_block/commit
// cycle.
type Phase int

const (
	WaitingForBeginBlock Phase = iota
	WaitingForDeliverTx
	WaitingForCommit
)

// String implements fmt.Stringer for diagnostics and test failure
// messages.
func (p Phase) String() string {
	switch p {
	case WaitingForBeginBlock:
		return "WaitingForBeginBlock"
	case WaitingForDeliverTx:
		return "WaitingForDeliverTx"
	case WaitingForCommit:
		return "WaitingForCommit"
	default:
		return "Unknown"
	}
}

// Driver is the phase machine wrapping one abci.App and the
// Blockchain its committed blocks are appended to. It owns the
// BlockBuilder across a block's begin_block..commit cycle.
type Driver struct {
	phase      Phase
	builder    *chain.BlockBuilder
	blockchain *chain.Blockchain
	app        *abci.App
	logger     log.Logger
	syncingUp  bool
}

// New returns a driver in WaitingForBeginBlock, wrapping app and
// appending committed blocks to blockchain.
func New(app *abci.App, blockchain *chain.Blockchain, logger log.Logger) *Driver {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Driver{
		phase:      WaitingForBeginBlock,
		builder:    chain.NewBlockBuilder(),
		blockchain: blockchain,
		app:        app,
		logger:     logger,
	}
}

// Phase returns the driver's current phase.
func (d *Driver) Phase() Phase { return d.phase }

// App returns the engine the driver is wrapping.
func (d *Driver) App() *abci.App { return d.app }

// Blockchain returns the chain committed blocks are appended to.
func (d *Driver) Blockchain() *chain.Blockchain { return d.blockchain }

// BeginBlock starts a new block: it resets the builder, records
// header, and feeds header.Timestamp to the engine's clock (which may
// itself fire timeouts and advance rounds before any transaction of
// this block is delivered.
func (d *Driver) BeginBlock(header chain.BlockHeader) error {
	if d.phase != WaitingForBeginBlock {
		return ErrOutOfPhase
	}
	if d.app.IsFinished() {
		return abci.ErrEngineFinished
	}
	d.builder.Reset()
	if err := d.builder.SetHeader(header); err != nil {
		return err
	}
	d.app.UpdateTime(header.Timestamp)
	d.phase = WaitingForDeliverTx
	return nil
}

// DeliverTx checks and processes tx against the currently scheduled
// round, then appends it to the block under construction. A
// CheckTx/ProcessTx failure is returned without adding tx to the
// builder.
func (d *Driver) DeliverTx(tx *txn.Transaction) error {
	if d.phase != WaitingForDeliverTx {
		return ErrOutOfPhase
	}
	if err := d.app.CheckTx(tx); err != nil {
		return err
	}
	if err := d.app.ProcessTx(tx); err != nil {
		return err
	}
	d.builder.AddTransaction(tx)
	return nil
}

// EndBlock closes transaction delivery for the block under
// construction; the round's own end_block check happens at Commit,
// once the block is actually appended to the chain.
func (d *Driver) EndBlock() error {
	if d.phase != WaitingForDeliverTx {
		return ErrOutOfPhase
	}
	d.phase = WaitingForCommit
	return nil
}

// Commit freezes the block under construction, appends it to the
// chain, asks the engine's current round whether that block concludes
// it, bounds the engine's history to its configured depth, and
// returns to WaitingForBeginBlock.
func (d *Driver) Commit() (*chain.Block, error) {
	if d.phase != WaitingForCommit {
		return nil, ErrOutOfPhase
	}
	block, err := d.builder.GetBlock()
	if err != nil {
		return nil, err
	}
	if err := d.blockchain.AddBlock(block); err != nil {
		return nil, err
	}
	d.app.EndBlockAndAdvance()
	if err := d.app.Cleanup(d.app.HistoryDepth()); err != nil {
		return nil, err
	}
	d.phase = WaitingForBeginBlock
	return block, nil
}

// ResetBlockchain reinitialises the chain. If isReplay is true, the
// phase machine is also forced back to WaitingForBeginBlock,
// discarding any in-flight block under construction.
func (d *Driver) ResetBlockchain(isReplay bool) {
	d.blockchain = chain.NewBlockchain()
	if isReplay {
		d.builder.Reset()
		d.phase = WaitingForBeginBlock
	}
}

// StartSync marks the driver as catching up to the network rather
// than actively participating in block production.
func (d *Driver) StartSync() { d.syncingUp = true }

// EndSync clears the syncing-up flag.
func (d *Driver) EndSync() { d.syncingUp = false }

// SyncingUp reports whether the driver currently considers itself to
// be syncing up.
func (d *Driver) SyncingUp() bool { return d.syncingUp }

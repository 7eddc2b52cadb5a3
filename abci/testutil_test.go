// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/round"
	"github.com/luxfi/periodengine/txn"
)

const testTxKind payload.TxKind = "VOTE"

type voteBody struct {
	Value    string
	HasValue bool
}

func (voteBody) TxKind() payload.TxKind { return testTxKind }

func voteAttribute(p *payload.Payload) (string, bool) {
	b := p.Body.(voteBody)
	return b.Value, b.HasValue
}

// testTx builds a transaction carrying round count 0, matching the
// round count every App test drives its first scheduled round at
// (schedule_round's increment_round_count runs once during NewApp,
// taking the fresh StateDB from RoundCountInit to 0).
func testTx(sender, value string, hasValue bool) *txn.Transaction {
	p := payload.New(sender, 0, voteBody{Value: value, HasValue: hasValue})
	return txn.New(p, []byte("sig"))
}

// testRoundClass builds a RoundClass whose instances are
// round.Voting, grouping votes under "collection" — enough behavior
// for App-level scheduling tests without a bespoke round template.
func testRoundClass(name string) *RoundClass {
	return NewRoundClass(name, testTxKind, true, func(
		ps *periodstate.PeriodState,
		params config.ConsensusParams,
		prevAllowedTxKind payload.TxKind,
		hasPrevAllowedTxKind bool,
		logger log.Logger,
	) round.Round {
		base := round.NewBase(name, testTxKind, true, "value", prevAllowedTxKind, hasPrevAllowedTxKind, ps, params, logger)
		return round.NewVoting(base, voteAttribute, "collection")
	})
}

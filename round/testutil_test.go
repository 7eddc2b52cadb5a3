// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"github.com/luxfi/log"

	"github.com/luxfi/periodengine/config"
	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/periodstate"
	"github.com/luxfi/periodengine/statedb"
	"github.com/luxfi/periodengine/txn"
)

const testTxKind payload.TxKind = "VOTE"

// voteBody is a minimal payload variant for round template tests: a
// single string field that may or may not be present.
type voteBody struct {
	Value    string
	HasValue bool
}

func (voteBody) TxKind() payload.TxKind { return testTxKind }

func voteAttribute(p *payload.Payload) (string, bool) {
	b := p.Body.(voteBody)
	return b.Value, b.HasValue
}

func newTestState(participants []string, extra map[string]any) *periodstate.PeriodState {
	kv := map[string]any{"participants": participants}
	for k, v := range extra {
		kv[k] = v
	}
	db := statedb.New(0, kv, nil)
	return periodstate.New(db)
}

func newTestBase(ps *periodstate.PeriodState, n int) Base {
	params, _ := config.NewConsensusParams(n)
	return NewBase("test-round", testTxKind, true, "value", "", false, ps, params, log.NewNoOpLogger())
}

func testTx(sender string, roundCount int64, value string, hasValue bool) *txn.Transaction {
	p := payload.New(sender, roundCount, voteBody{Value: value, HasValue: hasValue})
	return txn.New(p, []byte("sig"))
}

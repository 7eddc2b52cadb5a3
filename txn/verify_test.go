// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/periodengine/payload"
)

var errTestLedger = errors.New("ledger unavailable")

type estimateBody struct {
	Estimate float64 `json:"estimate"`
}

func (estimateBody) TxKind() payload.TxKind { return "txn_test_estimate" }

// fakeLedger recovers whatever address list it was told to, regardless
// of the message or signature it is handed. Tests that care about the
// signed message itself exercise Verify's encoding, not this fake.
type fakeLedger struct {
	addrs []string
	err   error
}

func (f *fakeLedger) RecoverAddresses(_, _ []byte) ([]string, error) {
	return f.addrs, f.err
}

func TestVerifySenderRecovered(t *testing.T) {
	p := payload.New("0xAgent1", 0, &estimateBody{Estimate: 1})
	tx := New(p, []byte("sig"))

	err := Verify(tx, &fakeLedger{addrs: []string{"0xAgent2", "0xAgent1"}})
	require.NoError(t, err)
}

func TestVerifySenderNotRecovered(t *testing.T) {
	p := payload.New("0xAgent1", 0, &estimateBody{Estimate: 1})
	tx := New(p, []byte("sig"))

	err := Verify(tx, &fakeLedger{addrs: []string{"0xAgent2"}})
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifyEmptySignature(t *testing.T) {
	p := payload.New("0xAgent1", 0, &estimateBody{Estimate: 1})
	tx := New(p, nil)

	err := Verify(tx, &fakeLedger{addrs: []string{"0xAgent1"}})
	require.ErrorIs(t, err, ErrEmptySignature)
}

func TestVerifyLedgerError(t *testing.T) {
	p := payload.New("0xAgent1", 0, &estimateBody{Estimate: 1})
	tx := New(p, []byte("sig"))

	err := Verify(tx, &fakeLedger{err: errTestLedger})
	require.ErrorIs(t, err, errTestLedger)
}

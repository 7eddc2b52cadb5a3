// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txn wraps a payload in the envelope that actually crosses the
// wire: the payload plus a signature over it, and the verifier that
// checks the signature recovers to the payload's declared sender.
//
// Signature recovery is delegated to a Ledger collaborator so this
// package stays agnostic to any one chain's signing scheme; see
// txn/ethledger for a concrete secp256k1/Keccak implementation.
package txn

import (
	"encoding/json"

	"github.com/luxfi/periodengine/payload"
)

// Transaction is a signed payload: what a round actually receives from
// the network, before Verify has checked it.
type Transaction struct {
	Payload   *payload.Payload
	Signature []byte
}

// New pairs a payload with a signature over its encoded form.
func New(p *payload.Payload, signature []byte) *Transaction {
	return &Transaction{Payload: p, Signature: signature}
}

// wireTransaction is the stable on-the-wire shape for a Transaction: the
// payload's own envelope plus the signature, base64-encoded by
// encoding/json's default []byte handling.
type wireTransaction struct {
	Payload   json.RawMessage `json:"payload"`
	Signature []byte          `json:"signature"`
}

// Encode serializes a transaction: its payload envelope plus signature.
func Encode(tx *Transaction) ([]byte, error) {
	payloadBytes, err := payload.Encode(tx.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireTransaction{
		Payload:   payloadBytes,
		Signature: tx.Signature,
	})
}

// Decode deserializes bytes produced by Encode.
func Decode(raw []byte) (*Transaction, error) {
	var wire wireTransaction
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	p, err := payload.Decode(wire.Payload)
	if err != nil {
		return nil, err
	}
	return &Transaction{Payload: p, Signature: wire.Signature}, nil
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txn

import "github.com/luxfi/periodengine/payload"

// Ledger recovers the set of addresses that could have produced
// signature over message. A chain-specific implementation (see
// txn/ethledger) wraps whatever curve and hashing scheme that chain
// actually uses; Verify itself only cares that the sender is among the
// addresses recovered.
type Ledger interface {
	RecoverAddresses(message, signature []byte) ([]string, error)
}

// Verify reports whether tx.Signature recovers to tx.Payload.Sender
// under ledger's scheme. The signed message is the payload's own wire
// encoding, so a signature is only valid for the exact id, sender,
// round count and body it was produced over.
func Verify(tx *Transaction, ledger Ledger) error {
	if len(tx.Signature) == 0 {
		return ErrEmptySignature
	}
	message, err := payload.Encode(tx.Payload)
	if err != nil {
		return err
	}
	addrs, err := ledger.RecoverAddresses(message, tx.Signature)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		if addr == tx.Payload.Sender {
			return nil
		}
	}
	return ErrSignatureInvalid
}

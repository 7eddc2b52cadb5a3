// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ethledger is a concrete txn.Ledger backed by secp256k1 ECDSA
// recovery and Keccak-256 address derivation, the scheme the spec's
// "external consensus/ledger collaborator" leaves unspecified and
// original_source delegates to an Ethereum-compatible crypto library.
package ethledger

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secp256k1ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidSignatureLength is returned when a signature is not the
// expected 65-byte [V || R || S] compact form (recovery code first, as
// secp256k1/ecdsa.SignCompact produces it).
var ErrInvalidSignatureLength = errors.New("ethledger: signature must be 65 bytes")

// Ledger recovers Ethereum-style checksum-free hex addresses
// ("0x"-prefixed, lowercase) from secp256k1 compact signatures.
type Ledger struct{}

// New returns a Ledger. It holds no state: every call derives the
// address fresh from the signature and message it is given.
func New() *Ledger { return &Ledger{} }

// RecoverAddresses implements txn.Ledger. It recovers exactly one
// candidate address, the one encoded by the signature's recovery bit,
// and returns it as a single-element slice so callers that expect a
// set of candidates (multi-scheme ledgers) still work unmodified.
func (l *Ledger) RecoverAddresses(message, signature []byte) ([]string, error) {
	if len(signature) != 65 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSignatureLength, len(signature))
	}
	hash := Keccak256(message)

	pub, _, err := secp256k1ecdsa.RecoverCompact(signature, hash)
	if err != nil {
		return nil, fmt.Errorf("ethledger: recover: %w", err)
	}
	return []string{AddressFromPublicKey(pub)}, nil
}

// Sign produces a 65-byte compact signature over message under key,
// for use by tests and by agents submitting payloads.
func Sign(key *secp256k1.PrivateKey, message []byte) []byte {
	hash := Keccak256(message)
	return secp256k1ecdsa.SignCompact(key, hash, false)
}

// Keccak256 is the legacy (pre-NIST) Keccak hash Ethereum addresses and
// transaction hashes are built from, distinct from standard SHA3-256.
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// AddressFromPublicKey derives the lowercase "0x"-prefixed hex address
// for a recovered public key: the last 20 bytes of the Keccak-256 hash
// of its uncompressed, unprefixed (X||Y) encoding.
func AddressFromPublicKey(pub *secp256k1.PublicKey) string {
	serialized := pub.SerializeUncompressed()[1:] // drop the 0x04 prefix
	hash := Keccak256(serialized)
	return "0x" + hex.EncodeToString(hash[12:])
}

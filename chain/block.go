// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain is the minimal blockchain a consensus-committed Block
// is appended to: one transaction list per height, nothing else. It is
// deliberately not a general ledger or state machine — that is what
// statedb and periodstate project out of the committed transactions.
package chain

import (
	"crypto/sha256"
	"encoding/json"
	"time"

	"github.com/luxfi/ids"

	"github.com/luxfi/periodengine/txn"
)

// BlockHeader carries the metadata a round agrees on before the
// block's transactions are known: its height and the block time the
// consensus engine stamped it with.
type BlockHeader struct {
	Height    uint64
	Timestamp time.Time
}

// Block is an immutable committed block: a header plus the
// transactions it carries. Block is only ever constructed through
// BlockBuilder, which freezes the transaction slice before handing a
// Block out.
type Block struct {
	header       BlockHeader
	transactions []*txn.Transaction
}

// Header returns the block's header.
func (b *Block) Header() BlockHeader { return b.header }

// Height returns the block's height.
func (b *Block) Height() uint64 { return b.header.Height }

// Timestamp returns the block's timestamp.
func (b *Block) Timestamp() time.Time { return b.header.Timestamp }

// Transactions returns the block's transactions in commit order. The
// returned slice is owned by the caller; mutating it does not affect
// the Block.
func (b *Block) Transactions() []*txn.Transaction {
	out := make([]*txn.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// Hash derives a content identifier for the block from its height,
// timestamp and the encoded form of each transaction. Two blocks built
// from the same header and the same transactions in the same order
// hash identically.
func (b *Block) Hash() (ids.ID, error) {
	hasher := sha256.New()
	if err := json.NewEncoder(hasher).Encode(b.header); err != nil {
		return ids.ID{}, err
	}
	for _, t := range b.transactions {
		raw, err := txn.Encode(t)
		if err != nil {
			return ids.ID{}, err
		}
		hasher.Write(raw)
	}
	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return ids.ID(sum), nil
}

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/luxfi/periodengine/txn"
)

// Blockchain is an ordered, append-only list of committed blocks
// indexed by height, where height equals the chain's length: the first
// committed block is height 1, and an empty chain reports height 0.
// AddBlock enforces that every block's height is exactly one past the
// chain's current height.
type Blockchain struct {
	blocks []*Block
}

// NewBlockchain returns an empty chain.
func NewBlockchain() *Blockchain {
	return &Blockchain{}
}

// Height returns the height of the most recently committed block, or 0
// if the chain is empty.
func (c *Blockchain) Height() int {
	return len(c.blocks)
}

// Len returns the number of committed blocks.
func (c *Blockchain) Len() int {
	return len(c.blocks)
}

// Blocks returns the committed blocks in height order. The returned
// slice is owned by the caller.
func (c *Blockchain) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Tip returns the most recently committed block, or nil if the chain
// is empty.
func (c *Blockchain) Tip() *Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// AddBlock appends block, rejecting it with ErrAddBlock unless its
// height immediately follows the chain's current height (1 for an
// empty chain).
func (c *Blockchain) AddBlock(block *Block) error {
	wantHeight := uint64(len(c.blocks)) + 1
	if block.Height() != wantHeight {
		return fmt.Errorf("%w: got height %d, want %d", ErrAddBlock, block.Height(), wantHeight)
	}
	c.blocks = append(c.blocks, block)
	return nil
}

// BlockBuilder accumulates a header and transactions across a block's
// lifetime (set at begin-block, appended to at each deliver-tx, read
// at end-block) before GetBlock freezes them into a Block at commit.
type BlockBuilder struct {
	header       *BlockHeader
	transactions []*txn.Transaction
}

// NewBlockBuilder returns an empty builder.
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// Reset clears the builder's header and transactions so it can be
// reused for the next block.
func (b *BlockBuilder) Reset() {
	b.header = nil
	b.transactions = nil
}

// SetHeader records the block's header. It returns ErrHeaderAlreadySet
// if called twice without an intervening Reset.
func (b *BlockBuilder) SetHeader(header BlockHeader) error {
	if b.header != nil {
		return ErrHeaderAlreadySet
	}
	b.header = &header
	return nil
}

// Header returns the builder's current header, or ErrHeaderNotSet if
// none has been set yet.
func (b *BlockBuilder) Header() (BlockHeader, error) {
	if b.header == nil {
		return BlockHeader{}, ErrHeaderNotSet
	}
	return *b.header, nil
}

// AddTransaction appends a transaction to the block under
// construction.
func (b *BlockBuilder) AddTransaction(tx *txn.Transaction) {
	b.transactions = append(b.transactions, tx)
}

// Transactions returns the transactions accumulated so far.
func (b *BlockBuilder) Transactions() []*txn.Transaction {
	out := make([]*txn.Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// GetBlock freezes the builder's header and transactions into a Block.
// It returns ErrHeaderNotSet if no header has been set.
func (b *BlockBuilder) GetBlock() (*Block, error) {
	if b.header == nil {
		return nil, ErrHeaderNotSet
	}
	txs := make([]*txn.Transaction, len(b.transactions))
	copy(txs, b.transactions)
	return &Block{header: *b.header, transactions: txs}, nil
}

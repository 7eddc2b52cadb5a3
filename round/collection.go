// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import (
	"fmt"

	"github.com/luxfi/periodengine/payload"
	"github.com/luxfi/periodengine/txn"
)

// CollectionRound is the shared mix-in every "collect one payload per
// sender" template embeds: it owns the sender->payload map and the
// three predicates every such template must check
// (right round, known participant, first submission from that
// sender), reporting them as ErrTxInvalid from CheckPayload and
// ErrInternal from ProcessPayload per the kernel's propagation policy.
type CollectionRound struct {
	Base
	collection map[string]*payload.Payload
}

// NewCollectionRound wraps base with an empty collection.
func NewCollectionRound(base Base) CollectionRound {
	return CollectionRound{Base: base, collection: map[string]*payload.Payload{}}
}

// Collection returns the payloads collected so far, keyed by sender.
// The returned map is owned by the caller.
func (c *CollectionRound) Collection() map[string]*payload.Payload {
	out := make(map[string]*payload.Payload, len(c.collection))
	for k, v := range c.collection {
		out[k] = v
	}
	return out
}

// validate reports the predicate a payload fails, or nil if it may be
// accepted. It does not distinguish check-time from process-time
// severity; callers wrap it differently.
func (c *CollectionRound) validate(tx *txn.Transaction) error {
	p := tx.Payload
	if p.RoundCount != c.PeriodState.RoundCount() {
		return fmt.Errorf("round_count %d does not match current round %d", p.RoundCount, c.PeriodState.RoundCount())
	}
	participants, err := c.PeriodState.Participants()
	if err != nil {
		return err
	}
	if !participants.Contains(p.Sender) {
		return fmt.Errorf("sender %q is not a participant", p.Sender)
	}
	if _, dup := c.collection[p.Sender]; dup {
		return fmt.Errorf("sender %q already submitted this round", p.Sender)
	}
	return nil
}

// CheckPayload is the read-only, mempool-facing validation: any
// predicate failure is ErrTxInvalid.
func (c *CollectionRound) CheckPayload(tx *txn.Transaction) error {
	if err := c.validate(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrTxInvalid, err)
	}
	return nil
}

// ProcessPayload re-checks the same predicates (any failure here is
// ErrInternal, since the transaction already passed CheckPayload once)
// and, if they hold, records the payload under its sender.
func (c *CollectionRound) ProcessPayload(tx *txn.Transaction) error {
	if err := c.validate(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	c.collection[tx.Payload.Sender] = tx.Payload
	return nil
}

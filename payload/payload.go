// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payload implements the typed transaction payloads that
// agents submit through consensus, and the process-wide registry that
// maps a wire tag to the concrete payload variant it decodes into.
package payload

import (
	"crypto/rand"
	"encoding/hex"
	"reflect"
)

// RoundCountUnset is the sentinel round count carried by a payload that
// was built outside of a round (e.g. at genesis), before a round stamps
// it with the round it expects.
const RoundCountUnset int64 = -1

// TxKind identifies a payload variant at global scope. It is the wire
// tag used to decide which concrete Body to decode into, and it is the
// value rounds compare against their AllowedTxKind.
type TxKind string

// Body is implemented by every concrete payload variant. Body
// implementations are plain data structs; round templates that group
// votes by a field of a Body do so through an explicit extractor
// function supplied at round-construction time (see round.Attribute),
// not through reflection over field names.
type Body interface {
	TxKind() TxKind
}

// Payload pairs a Body with the envelope fields every round cares
// about regardless of variant: who sent it, when (round_count), and
// under what identity (id).
type Payload struct {
	ID         string
	Sender     string
	RoundCount int64
	Body       Body
}

// New builds a payload with a freshly generated id and the given round
// count. Use RoundCountUnset if the round is not yet known.
func New(sender string, roundCount int64, body Body) *Payload {
	return &Payload{
		ID:         newID(),
		Sender:     sender,
		RoundCount: roundCount,
		Body:       body,
	}
}

// TxKind returns the wire tag of the payload's body.
func (p *Payload) TxKind() TxKind {
	return p.Body.TxKind()
}

// WithNewID returns a copy of p carrying a freshly generated id, the
// same sender, round count and body. It is used by retry logic that
// resubmits a payload rejected as late-arriving.
func (p *Payload) WithNewID() *Payload {
	clone := *p
	clone.ID = newID()
	return &clone
}

// Equal reports whether two payloads are identical field-for-field,
// including id and round count. decode(encode(p)) must equal p under
// this definition.
func (p *Payload) Equal(other *Payload) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID &&
		p.Sender == other.Sender &&
		p.RoundCount == other.RoundCount &&
		reflect.DeepEqual(p.Body, other.Body)
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; there is no safe fallback for a consensus identifier.
		panic("payload: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

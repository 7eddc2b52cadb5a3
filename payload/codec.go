// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import "encoding/json"

// envelope is the stable wire shape for a Payload: the fields every
// round cares about, plus the variant-specific data as a deferred
// (json.RawMessage) second pass so decode can pick the right
// concrete Body before unmarshaling it.
type envelope struct {
	TxKind     TxKind          `json:"tx_kind"`
	ID         string          `json:"id"`
	Sender     string          `json:"sender"`
	RoundCount int64           `json:"round_count"`
	Data       json.RawMessage `json:"data"`
}

// Encode serializes a payload to its stable wire form.
func Encode(p *Payload) ([]byte, error) {
	if p.Body == nil {
		return nil, ErrMissingTxKind
	}
	data, err := json.Marshal(p.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		TxKind:     p.Body.TxKind(),
		ID:         p.ID,
		Sender:     p.Sender,
		RoundCount: p.RoundCount,
		Data:       data,
	})
}

// Decode deserializes bytes produced by Encode, dispatching on tx_kind
// via the process-wide registry populated by Register.
func Decode(raw []byte) (*Payload, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.TxKind == "" {
		return nil, ErrMissingTxKind
	}
	ctor, ok := Lookup(env.TxKind)
	if !ok {
		return nil, ErrUnknownTxKind
	}
	body := ctor()
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, body); err != nil {
			return nil, err
		}
	}
	return &Payload{
		ID:         env.ID,
		Sender:     env.Sender,
		RoundCount: env.RoundCount,
		Body:       body,
	}, nil
}

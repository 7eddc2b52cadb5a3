// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type estimateBody struct {
	Estimate float64 `json:"estimate"`
}

func (estimateBody) TxKind() TxKind { return "estimate" }

type observationBody struct {
	Observation int `json:"observation"`
}

func (observationBody) TxKind() TxKind { return "observation" }

func TestMain(m *testing.M) {
	resetRegistryForTest()
	MustRegister("estimate", "estimateBody", func() Body { return &estimateBody{} })
	MustRegister("observation", "observationBody", func() Body { return &observationBody{} })
	m.Run()
}

func TestRegisterDuplicateTxKindDifferentVariant(t *testing.T) {
	err := Register("estimate", "somethingElse", func() Body { return &observationBody{} })
	require.ErrorIs(t, err, ErrDuplicateTxKind)
}

func TestRegisterDuplicateTxKindSameVariantIsNoop(t *testing.T) {
	err := Register("estimate", "estimateBody", func() Body { return &estimateBody{} })
	require.NoError(t, err)
}

func TestRegisterMissingTxKind(t *testing.T) {
	err := Register("", "x", func() Body { return &estimateBody{} })
	require.ErrorIs(t, err, ErrMissingTxKind)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := New("0xAgent1", 5, &estimateBody{Estimate: 3.14})

	raw, err := Encode(p)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.True(t, p.Equal(decoded), "decode(encode(p)) must equal p")
	require.Equal(t, p.Sender, decoded.Sender)
	require.Equal(t, p.RoundCount, decoded.RoundCount)
	require.Equal(t, p.ID, decoded.ID)
}

func TestDecodeUnknownTxKind(t *testing.T) {
	_, err := Decode([]byte(`{"tx_kind":"nope","id":"x","sender":"y","round_count":0,"data":{}}`))
	require.ErrorIs(t, err, ErrUnknownTxKind)
}

func TestWithNewID(t *testing.T) {
	p := New("0xAgent1", 5, &estimateBody{Estimate: 1})
	clone := p.WithNewID()

	require.NotEqual(t, p.ID, clone.ID)
	require.Equal(t, p.Sender, clone.Sender)
	require.Equal(t, p.RoundCount, clone.RoundCount)
	require.Equal(t, p.Body, clone.Body)
}

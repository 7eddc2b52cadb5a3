// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/periodengine/payload"
)

func init() {
	payload.MustRegister("txn_test_estimate", "estimateBody", func() payload.Body { return &estimateBody{} })
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := payload.New("0xAgent1", 3, &estimateBody{Estimate: 2.5})
	tx := New(p, []byte{0x01, 0x02, 0x03})

	raw, err := Encode(tx)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)

	require.True(t, p.Equal(decoded.Payload))
	require.Equal(t, tx.Signature, decoded.Signature)
}

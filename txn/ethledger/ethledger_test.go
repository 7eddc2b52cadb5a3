// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ethledger

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func TestRecoverAddressesMatchesSigner(t *testing.T) {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	message := []byte("round 3 estimate payload")
	sig := Sign(key, message)

	ledger := New()
	addrs, err := ledger.RecoverAddresses(message, sig)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	require.Equal(t, AddressFromPublicKey(key.PubKey()), addrs[0])
}

func TestRecoverAddressesRejectsShortSignature(t *testing.T) {
	ledger := New()
	_, err := ledger.RecoverAddresses([]byte("msg"), []byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrInvalidSignatureLength)
}

func TestRecoverAddressesDifferentMessageDifferentAddress(t *testing.T) {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	sig := Sign(key, []byte("message A"))

	ledger := New()
	addrs, err := ledger.RecoverAddresses([]byte("message B"), sig)
	require.NoError(t, err)
	require.NotEqual(t, AddressFromPublicKey(key.PubKey()), addrs[0])
}

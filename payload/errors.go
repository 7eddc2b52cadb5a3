// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import "errors"

// ErrDuplicateTxKind is returned when a tx kind is registered under a
// second, different variant name.
var ErrDuplicateTxKind = errors.New("payload: duplicate tx_kind registration")

// ErrMissingTxKind is returned when a payload variant is registered, or
// decoded, without a tx_kind.
var ErrMissingTxKind = errors.New("payload: missing tx_kind")

// ErrUnknownTxKind is returned by Decode when the wire envelope names a
// tx_kind that has no registered variant.
var ErrUnknownTxKind = errors.New("payload: unknown tx_kind")

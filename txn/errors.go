// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txn

import "errors"

// ErrSignatureInvalid is returned when a transaction's signature does not
// recover to its declared sender.
var ErrSignatureInvalid = errors.New("txn: signature does not recover to sender")

// ErrEmptySignature is returned when a transaction carries no signature
// bytes at all.
var ErrEmptySignature = errors.New("txn: empty signature")

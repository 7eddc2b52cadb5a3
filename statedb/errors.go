// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package statedb

import "errors"

// ErrValueMissing is returned by GetStrict when the requested key is
// absent from the current period's snapshot, or present but nil.
var ErrValueMissing = errors.New("statedb: value missing")

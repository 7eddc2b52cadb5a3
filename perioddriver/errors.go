// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package perioddriver

import "errors"

// ErrOutOfPhase is returned when begin_block/deliver_tx/end_block/commit
// is called while the driver's phase machine is not in the state that
// call expects — a caller bug in the outer ABCI driver, not a
// recoverable condition.
var ErrOutOfPhase = errors.New("perioddriver: call received out of phase")

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import "errors"

// ErrTxKindUnknown is returned by CheckTx/ProcessTx when the incoming
// transaction's tx_kind does not match the round's AllowedTxKind and is
// not the previous round's tx_kind either.
var ErrTxKindUnknown = errors.New("round: unexpected tx_kind")

// ErrLateArriving is returned when the incoming transaction's tx_kind
// matches the previous round's tx_kind: a straggler from a round this
// engine has already moved past. It is rejected silently rather than
// treated as a fault.
var ErrLateArriving = errors.New("round: late-arriving tx from previous round")

// ErrTxInvalid is returned by CheckTx when a transaction's kind matches
// but it violates a payload precondition (wrong round_count,
// non-participant sender, duplicate sender, non-keeper sender).
var ErrTxInvalid = errors.New("round: invalid payload")

// ErrInternal is returned by ProcessTx for the same predicate failures
// ErrTxInvalid reports from CheckTx: by the time process_tx runs, the
// underlying consensus layer has already accepted the transaction, so
// a precondition failure here means the engine's own invariants broke,
// not that the transaction was bad.
var ErrInternal = errors.New("round: internal invariant violated")

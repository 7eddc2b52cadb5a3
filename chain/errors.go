// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

// ErrAddBlock is returned when a block cannot be appended to the chain
// because its height does not immediately follow the chain's current
// height.
var ErrAddBlock = errors.New("block height does not follow chain height")

// ErrHeaderAlreadySet is returned by BlockBuilder when a header is set
// twice without an intervening Reset.
var ErrHeaderAlreadySet = errors.New("block header already set")

// ErrHeaderNotSet is returned by BlockBuilder when the block is built,
// or a header is read, before a header has been set.
var ErrHeaderNotSet = errors.New("block header not set")

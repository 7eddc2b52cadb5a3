// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

// ErrInvalidMaxParticipants is returned when the configured participant
// count cannot back a BFT quorum.
var ErrInvalidMaxParticipants = errors.New("max_participants must be an integer >= 0")

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the consensus parameters shared by every round
// and period in a run of the engine.
package config

import "math"

// ConsensusParams carries the BFT sizing parameters for a run of the
// engine: the number of participating agents, from which the quorum
// threshold is derived.
type ConsensusParams struct {
	// MaxParticipants is the number of agents expected to participate
	// in consensus (spec: N).
	MaxParticipants int
}

// NewConsensusParams builds validated consensus parameters.
func NewConsensusParams(maxParticipants int) (ConsensusParams, error) {
	p := ConsensusParams{MaxParticipants: maxParticipants}
	if err := p.Validate(); err != nil {
		return ConsensusParams{}, err
	}
	return p, nil
}

// Validate reports whether the parameters are internally consistent.
func (p ConsensusParams) Validate() error {
	if p.MaxParticipants < 0 {
		return ErrInvalidMaxParticipants
	}
	return nil
}

// Threshold returns the BFT quorum size ceil((2N+1)/3) for N participants.
func (p ConsensusParams) Threshold() int {
	return Threshold(p.MaxParticipants)
}

// Threshold returns the BFT quorum size ceil((2N+1)/3) for n participants.
func Threshold(n int) int {
	return int(math.Ceil(float64(2*n+1) / 3))
}

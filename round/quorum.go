// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package round

import "github.com/luxfi/periodengine/config"

// MajorityPossible reports whether some value in counts (keyed by
// whatever string a template groups votes by) can still reach
// threshold(n) once the remaining n-|votes| participants vote. With
// zero votes cast, it succeeds vacuously — there is nothing yet to
// rule out.
func MajorityPossible(counts map[string]int, n int) bool {
	total, max := 0, 0
	for _, c := range counts {
		total += c
		if c > max {
			max = c
		}
	}
	if total == 0 {
		return true
	}
	remaining := n - total
	return remaining+max >= config.Threshold(n)
}

// MajorityPossibleWithNewVoter reports whether majority remains
// possible after hypothetically adding voter's vote for value to
// counts/voters. It requires voter has not already voted and that the
// collection isn't already full (|voters| <= n-1); violating either
// precondition is an engine bug (ErrInternal), not a "no majority"
// outcome, since it means a caller tried to double-count a sender.
func MajorityPossibleWithNewVoter(counts map[string]int, voters map[string]struct{}, voter, value string, n int) (bool, error) {
	if _, already := voters[voter]; already {
		return false, ErrInternal
	}
	if len(voters) > n-1 {
		return false, ErrInternal
	}
	next := make(map[string]int, len(counts)+1)
	for k, v := range counts {
		next[k] = v
	}
	next[value]++
	return MajorityPossible(next, n), nil
}

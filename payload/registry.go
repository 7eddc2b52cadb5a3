// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import "fmt"

// Constructor returns a zero-value Body for its tx kind, ready to be
// the decode target for encoding/json.
type Constructor func() Body

type registration struct {
	variantName string
	new         Constructor
}

// registry is the process-wide map from wire tag to payload variant,
// populated by Register at payload-variant declaration time (typically
// from a package-level var or init in the package that defines the
// concrete Body).
var registry = map[TxKind]registration{}

// Register associates a tx kind with the variant that decodes it.
// Re-registering a tx kind under a different variant name is rejected
// with ErrDuplicateTxKind; re-registering the same variant name is a
// no-op, which lets a package's init run more than once (e.g. under
// test) without failing.
func Register(kind TxKind, variantName string, ctor Constructor) error {
	if kind == "" {
		return ErrMissingTxKind
	}
	if variantName == "" {
		return fmt.Errorf("payload: variant name required for tx kind %q", kind)
	}
	if existing, ok := registry[kind]; ok {
		if existing.variantName != variantName {
			return fmt.Errorf("%w: tx_kind %q already registered to variant %q, cannot register to %q",
				ErrDuplicateTxKind, kind, existing.variantName, variantName)
		}
		return nil
	}
	registry[kind] = registration{variantName: variantName, new: ctor}
	return nil
}

// MustRegister is Register, panicking on error. Use it from an init
// function the way database/sql.Register
// panics on duplicate driver names: a registration conflict is a
// programming error, not a runtime condition to recover from.
func MustRegister(kind TxKind, variantName string, ctor Constructor) {
	if err := Register(kind, variantName, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor registered for kind, if any.
func Lookup(kind TxKind) (Constructor, bool) {
	reg, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return reg.new, true
}

// resetRegistryForTest clears the registry. Unexported: it exists so
// this package's own tests can register throwaway variants without
// polluting other tests in the same binary.
func resetRegistryForTest() {
	registry = map[TxKind]registration{}
}

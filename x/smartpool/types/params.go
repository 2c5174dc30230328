package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params are the module-wide governance parameters
type Params struct {
	// Paused disables every mutating entry point when set
	Paused bool `json:"paused"`
	// ExitFee is the fraction withheld on exits, unbinds and downward
	// rebinds, routed to the fee collector
	ExitFee math.LegacyDec `json:"exit_fee"`
	// MaxPriceAgeSeconds is the oldest a latest round may be before swaps
	// are rejected as stale
	MaxPriceAgeSeconds uint64 `json:"max_price_age_seconds"`
}

// DefaultParams returns the default module parameters
func DefaultParams() Params {
	return Params{
		Paused:             false,
		ExitFee:            math.LegacyZeroDec(),
		MaxPriceAgeSeconds: 300,
	}
}

// Validate checks parameter ranges
func (p Params) Validate() error {
	if p.ExitFee.IsNil() || p.ExitFee.IsNegative() {
		return fmt.Errorf("exit fee must be non-negative")
	}
	if p.ExitFee.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("exit fee must be below 1")
	}
	if p.MaxPriceAgeSeconds == 0 {
		return fmt.Errorf("max price age must be positive")
	}
	return nil
}

package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "pricefeed"
	StoreKey   = ModuleName
)

// Feed decimals bounds
const (
	MaxDecimals = 18
)

// Feed is a registered price feed. Decimals is the fixed-point scale of
// submitted round prices.
type Feed struct {
	Id          string `json:"id"`
	Description string `json:"description"`
	Decimals    uint8  `json:"decimals"`
	Owner       string `json:"owner"`
	LatestRound uint64 `json:"latest_round"`
	CreatedAt   int64  `json:"created_at"`
}

// Round is one price observation. Price is signed; consumers decide how to
// treat non-positive values.
type Round struct {
	RoundId   uint64         `json:"round_id"`
	Price     math.LegacyDec `json:"price"`
	Timestamp int64          `json:"timestamp"`
}

// SentinelRound is returned by consumers for unavailable history
func SentinelRound() Round {
	return Round{RoundId: 0, Price: math.LegacyZeroDec(), Timestamp: 0}
}

// IsSentinel reports whether the round carries no observation
func (r Round) IsSentinel() bool {
	return r.RoundId == 0 && r.Timestamp == 0
}

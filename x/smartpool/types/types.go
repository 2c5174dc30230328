package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "smartpool"
	StoreKey   = ModuleName
)

// Pool bounds
const (
	MinBoundTokens = 2
	MaxBoundTokens = 8
)

var (
	MinWeight      = math.LegacyOneDec()
	MaxWeight      = math.LegacyNewDec(50)
	MaxTotalWeight = math.LegacyNewDec(50)
	// One whole base unit; bound balances below this would record custody
	// that no coin transfer can deliver.
	MinBalance = math.LegacyOneDec()

	MinFee = math.LegacyNewDecWithPrec(1, 6)
	MaxFee = math.LegacyNewDecWithPrec(1, 1) // 10%

	// Single-swap exposure caps relative to the bound balance.
	MaxInRatio  = math.LegacyNewDecWithPrec(5, 1)                                          // 1/2
	MaxOutRatio = math.LegacyOneDec().Quo(math.LegacyNewDec(3)).Add(math.LegacyNewDecWithPrec(1, 18)) // 1/3 + epsilon

	// Shares minted to the controller at finalization (18-decimal base units).
	InitPoolSupply = math.NewIntWithDecimal(100, 18)

	DefaultSwapFee         = math.LegacyNewDecWithPrec(3, 3) // 0.3%
	DefaultCoverageZ       = math.LegacyNewDecWithPrec(196, 2)
	DefaultCoverageHorizon = math.LegacyOneDec()
)

// Default lookback window for the coverage volatility estimator
const (
	DefaultLookbackRounds  = uint64(10)
	DefaultLookbackSeconds = uint64(3600)
)

// Record tracks one bound token inside a pool
type Record struct {
	Bound   bool           `json:"bound"`
	Index   int            `json:"index"`
	Denorm  math.LegacyDec `json:"denorm"`
	Balance math.LegacyDec `json:"balance"`
}

// PriceBinding links a bound token to its price feed. InitialPrice is the
// feed price snapshotted when the token was last bound or rebound; adjusted
// weights scale the denormalized weight by currentPrice/InitialPrice.
type PriceBinding struct {
	FeedId       string         `json:"feed_id"`
	InitialPrice math.LegacyDec `json:"initial_price"`
}

// Pool is an oracle-weighted liquidity pool. Tokens is dense and ordered;
// Records[t].Index always equals the position of t in Tokens, and TotalWeight
// equals the sum of all bound Denorms.
type Pool struct {
	Id            uint64                  `json:"id"`
	Tokens        []string                `json:"tokens"`
	Records       map[string]Record       `json:"records"`
	PriceBindings map[string]PriceBinding `json:"price_bindings"`
	TotalWeight   math.LegacyDec          `json:"total_weight"`
	SwapFee       math.LegacyDec          `json:"swap_fee"`
	Controller    string                  `json:"controller"`
	Finalized     bool                    `json:"finalized"`
	PublicSwap    bool                    `json:"public_swap"`

	// Coverage spread parameters (GBM estimator inputs)
	CoverageZ       math.LegacyDec `json:"coverage_z"`
	CoverageHorizon math.LegacyDec `json:"coverage_horizon"`
	LookbackRounds  uint64         `json:"lookback_rounds"`
	LookbackSeconds uint64         `json:"lookback_seconds"`

	CreatedAt int64 `json:"created_at"`
}

// NewPool creates an unfinalized pool with default fee and coverage params
func NewPool(id uint64, controller string, createdAt int64) *Pool {
	return &Pool{
		Id:              id,
		Tokens:          []string{},
		Records:         map[string]Record{},
		PriceBindings:   map[string]PriceBinding{},
		TotalWeight:     math.LegacyZeroDec(),
		SwapFee:         DefaultSwapFee,
		Controller:      controller,
		Finalized:       false,
		PublicSwap:      false,
		CoverageZ:       DefaultCoverageZ,
		CoverageHorizon: DefaultCoverageHorizon,
		LookbackRounds:  DefaultLookbackRounds,
		LookbackSeconds: DefaultLookbackSeconds,
		CreatedAt:       createdAt,
	}
}

// ShareDenom returns the bank denom of this pool's shares
func (p *Pool) ShareDenom() string {
	return ShareDenom(p.Id)
}

// ShareDenom returns the share denom for a pool id
func ShareDenom(poolId uint64) string {
	return fmt.Sprintf("smartpool/%d", poolId)
}

// IsBound reports whether token is bound in the pool
func (p *Pool) IsBound(token string) bool {
	rec, ok := p.Records[token]
	return ok && rec.Bound
}

// NumTokens returns the number of bound tokens
func (p *Pool) NumTokens() int {
	return len(p.Tokens)
}

// ValidateInvariants checks the structural pool invariants: dense token
// index, bound records for every listed token, and weight conservation.
func (p *Pool) ValidateInvariants() error {
	if len(p.Tokens) != len(p.Records) {
		return fmt.Errorf("pool %d: %d tokens listed but %d records", p.Id, len(p.Tokens), len(p.Records))
	}
	sum := math.LegacyZeroDec()
	for i, token := range p.Tokens {
		rec, ok := p.Records[token]
		if !ok || !rec.Bound {
			return fmt.Errorf("pool %d: token %s listed but not bound", p.Id, token)
		}
		if rec.Index != i {
			return fmt.Errorf("pool %d: token %s index %d, expected %d", p.Id, token, rec.Index, i)
		}
		if _, ok := p.PriceBindings[token]; !ok {
			return fmt.Errorf("pool %d: token %s has no price binding", p.Id, token)
		}
		sum = sum.Add(rec.Denorm)
	}
	if !sum.Equal(p.TotalWeight) {
		return fmt.Errorf("pool %d: total weight %s, records sum to %s", p.Id, p.TotalWeight.String(), sum.String())
	}
	if p.TotalWeight.GT(MaxTotalWeight) {
		return fmt.Errorf("pool %d: total weight %s exceeds max", p.Id, p.TotalWeight.String())
	}
	return nil
}

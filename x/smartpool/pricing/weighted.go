// Package pricing implements the weighted-pool pricing engine: spot prices,
// the exact-in and exact-out closed forms, and the volatility coverage
// spread. All functions are pure and deterministic.
package pricing

import (
	"cosmossdk.io/math"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

var (
	one = math.LegacyOneDec()

	// powPrecision bounds the truncation error of the fractional power
	// series. Rounding always favors the pool.
	powPrecision = math.LegacyNewDecWithPrec(1, 10)
)

// SpotPrice returns the instantaneous price of tokenIn denominated in
// tokenOut, inclusive of the swap fee:
//
//	(balanceIn/weightIn) / (balanceOut/weightOut) * 1/(1-fee)
func SpotPrice(balanceIn, weightIn, balanceOut, weightOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if !weightIn.IsPositive() || !weightOut.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("non-positive weight")
	}
	if !balanceIn.IsPositive() || !balanceOut.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("non-positive balance")
	}
	numer := balanceIn.Quo(weightIn)
	denom := balanceOut.Quo(weightOut)
	scale := one.Quo(one.Sub(swapFee))
	return numer.Quo(denom).Mul(scale), nil
}

// CalcOutGivenIn returns the amount of tokenOut for an exact tokenIn input:
//
//	balanceOut * (1 - (balanceIn/(balanceIn + amountIn*(1-fee)))^(weightIn/weightOut))
func CalcOutGivenIn(balanceIn, weightIn, balanceOut, weightOut, amountIn, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if !weightIn.IsPositive() || !weightOut.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("non-positive weight")
	}
	adjustedIn := amountIn.Mul(one.Sub(swapFee))
	if !adjustedIn.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("input vanishes after fee")
	}
	base := balanceIn.Quo(balanceIn.Add(adjustedIn))
	weightRatio := weightIn.Quo(weightOut)
	power, err := Pow(base, weightRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return balanceOut.Mul(one.Sub(power)), nil
}

// CalcInGivenOut returns the amount of tokenIn required for an exact
// tokenOut output:
//
//	balanceIn * ((balanceOut/(balanceOut-amountOut))^(weightOut/weightIn) - 1) / (1-fee)
func CalcInGivenOut(balanceIn, weightIn, balanceOut, weightOut, amountOut, swapFee math.LegacyDec) (math.LegacyDec, error) {
	if !weightIn.IsPositive() || !weightOut.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("non-positive weight")
	}
	if amountOut.GTE(balanceOut) {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("output exceeds balance")
	}
	base := balanceOut.Quo(balanceOut.Sub(amountOut))
	weightRatio := weightOut.Quo(weightIn)
	power, err := Pow(base, weightRatio)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return balanceIn.Mul(power.Sub(one)).Quo(one.Sub(swapFee)), nil
}

// Pow computes base^exp for positive base. The integer part uses exact
// decimal exponentiation; the fractional part uses a binomial series that
// converges for base in (0, 2), which the swap ratio caps guarantee.
func Pow(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if !base.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("non-positive power base")
	}
	whole := exp.TruncateDec()
	remain := exp.Sub(whole)

	wholePow := base.Power(whole.TruncateInt().Uint64())
	if remain.IsZero() {
		return wholePow, nil
	}
	partial, err := powApprox(base, remain)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return wholePow.Mul(partial), nil
}

// powApprox computes base^exp for 0 < exp < 1 via the binomial series
// (1+x)^a = sum_k C(a,k) x^k, truncated at powPrecision.
func powApprox(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if exp.IsZero() {
		return one, nil
	}
	x, xNeg := absDifferenceWithSign(base, one)
	if x.GTE(one) {
		return math.LegacyDec{}, types.ErrMathApprox.Wrapf("power base %s outside (0, 2)", base.String())
	}

	term := one
	sum := one
	negative := false

	for i := int64(1); term.GTE(powPrecision); i++ {
		bigK := math.LegacyNewDec(i)
		c, cNeg := absDifferenceWithSign(exp, bigK.Sub(one))
		term = term.Mul(c.Mul(x)).Quo(bigK)
		if term.IsZero() {
			break
		}
		if xNeg {
			negative = !negative
		}
		if cNeg {
			negative = !negative
		}
		if negative {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
	}
	if !sum.IsPositive() {
		return math.LegacyDec{}, types.ErrMathApprox.Wrap("power series degenerated")
	}
	return sum, nil
}

// absDifferenceWithSign returns |a-b| and whether a-b is negative
func absDifferenceWithSign(a, b math.LegacyDec) (math.LegacyDec, bool) {
	if a.GTE(b) {
		return a.Sub(b), false
	}
	return b.Sub(a), true
}

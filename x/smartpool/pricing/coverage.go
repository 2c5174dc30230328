package pricing

import (
	stdmath "math"
	"strconv"

	"cosmossdk.io/math"
)

// LogReturns computes log(p[i+1]/p[i]) over a price series. Non-positive
// prices break the series; returns spanning them are dropped.
func LogReturns(prices []math.LegacyDec) []float64 {
	var returns []float64
	for i := 1; i < len(prices); i++ {
		if !prices[i-1].IsPositive() || !prices[i].IsPositive() {
			continue
		}
		prev := prices[i-1].MustFloat64()
		cur := prices[i].MustFloat64()
		returns = append(returns, stdmath.Log(cur/prev))
	}
	return returns
}

// Volatility returns the population standard deviation of a return series
func Volatility(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))
	return stdmath.Sqrt(variance)
}

// CoverageSpread derives the multiplicative quote spread from the GBM tail
// bound over the pricing horizon:
//
//	exp(z*sigma*sqrt(h) - (sigma^2/2)*h)
//
// where sigma is the volatility of the historical relative price series.
// The spread is floored at 1: a quiet feed never improves the quote.
func CoverageSpread(z, horizon math.LegacyDec, prices []math.LegacyDec) math.LegacyDec {
	returns := LogReturns(prices)
	if len(returns) == 0 {
		return math.LegacyOneDec()
	}
	sigma := Volatility(returns)
	if sigma == 0 {
		return math.LegacyOneDec()
	}

	zf := z.MustFloat64()
	hf := horizon.MustFloat64()
	if hf <= 0 {
		return math.LegacyOneDec()
	}

	spread := stdmath.Exp(zf*sigma*stdmath.Sqrt(hf) - (sigma*sigma/2)*hf)
	if spread <= 1 || stdmath.IsNaN(spread) || stdmath.IsInf(spread, 0) {
		return math.LegacyOneDec()
	}
	return decFromFloat(spread)
}

// decFromFloat converts a finite positive float to LegacyDec
func decFromFloat(f float64) math.LegacyDec {
	d, err := math.LegacyNewDecFromStr(strconv.FormatFloat(f, 'f', 18, 64))
	if err != nil {
		return math.LegacyOneDec()
	}
	return d
}

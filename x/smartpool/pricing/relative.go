package pricing

import (
	"cosmossdk.io/math"
)

// RelativePrice returns the price of the quote feed in units of the base
// feed, rescaling for differing feed decimals. Feed prices are raw
// fixed-point values: actual = raw / 10^decimals, so
//
//	rel = (raw2/raw1) * 10^(d1-d2)
//
// Non-positive raw prices yield a zero relative price.
func RelativePrice(price1 math.LegacyDec, decimals1 uint8, price2 math.LegacyDec, decimals2 uint8) math.LegacyDec {
	if !price1.IsPositive() || !price2.IsPositive() {
		return math.LegacyZeroDec()
	}
	rel := price2.Quo(price1)
	switch {
	case decimals1 > decimals2:
		rel = rel.Mul(pow10(decimals1 - decimals2))
	case decimals2 > decimals1:
		rel = rel.Quo(pow10(decimals2 - decimals1))
	}
	return rel
}

func pow10(n uint8) math.LegacyDec {
	return math.LegacyNewDecFromInt(math.NewIntWithDecimal(1, int(n)))
}

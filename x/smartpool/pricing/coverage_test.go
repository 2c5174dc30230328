package pricing

import (
	stdmath "math"
	"testing"

	sdkmath "cosmossdk.io/math"
)

// TestLogReturns tests log return extraction from a price series
func TestLogReturns(t *testing.T) {
	prices := []sdkmath.LegacyDec{dec("100"), dec("110"), dec("121")}
	returns := LogReturns(prices)

	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	expected := stdmath.Log(1.1)
	for i, r := range returns {
		if stdmath.Abs(r-expected) > 1e-9 {
			t.Errorf("return %d: expected %f, got %f", i, expected, r)
		}
	}
}

// TestLogReturnsSkipsNonPositivePrices tests that returns spanning a broken
// observation are dropped
func TestLogReturnsSkipsNonPositivePrices(t *testing.T) {
	prices := []sdkmath.LegacyDec{dec("100"), dec("110"), sdkmath.LegacyZeroDec(), dec("120"), dec("132")}
	returns := LogReturns(prices)

	// (100,110) and (120,132); the two pairs touching the zero are dropped
	if len(returns) != 2 {
		t.Errorf("expected 2 returns, got %d", len(returns))
	}
}

// TestLogReturnsShortSeries tests empty and single-element inputs
func TestLogReturnsShortSeries(t *testing.T) {
	if returns := LogReturns(nil); len(returns) != 0 {
		t.Errorf("expected no returns for nil series, got %d", len(returns))
	}
	if returns := LogReturns([]sdkmath.LegacyDec{dec("100")}); len(returns) != 0 {
		t.Errorf("expected no returns for single price, got %d", len(returns))
	}
}

// TestVolatility tests the population standard deviation
func TestVolatility(t *testing.T) {
	if v := Volatility(nil); v != 0 {
		t.Errorf("expected zero volatility for empty series, got %f", v)
	}
	if v := Volatility([]float64{0.01, 0.01, 0.01}); v != 0 {
		t.Errorf("expected zero volatility for constant returns, got %f", v)
	}

	// Mean 0, variance 0.01, sigma 0.1
	v := Volatility([]float64{0.1, -0.1})
	if stdmath.Abs(v-0.1) > 1e-12 {
		t.Errorf("expected volatility 0.1, got %f", v)
	}
}

// TestCoverageSpreadQuietFeed tests that flat or empty price history yields
// the neutral spread
func TestCoverageSpreadQuietFeed(t *testing.T) {
	z := dec("1.96")
	horizon := sdkmath.LegacyOneDec()

	if s := CoverageSpread(z, horizon, nil); !s.Equal(sdkmath.LegacyOneDec()) {
		t.Errorf("expected spread 1 for empty history, got %s", s.String())
	}
	if s := CoverageSpread(z, horizon, []sdkmath.LegacyDec{dec("100")}); !s.Equal(sdkmath.LegacyOneDec()) {
		t.Errorf("expected spread 1 for single price, got %s", s.String())
	}

	flat := []sdkmath.LegacyDec{dec("100"), dec("100"), dec("100"), dec("100")}
	if s := CoverageSpread(z, horizon, flat); !s.Equal(sdkmath.LegacyOneDec()) {
		t.Errorf("expected spread 1 for flat prices, got %s", s.String())
	}
}

// TestCoverageSpreadVolatileFeed tests that a volatile series widens the
// spread above 1
func TestCoverageSpreadVolatileFeed(t *testing.T) {
	prices := []sdkmath.LegacyDec{dec("100"), dec("120"), dec("90"), dec("130"), dec("95")}
	spread := CoverageSpread(dec("1.96"), sdkmath.LegacyOneDec(), prices)

	if !spread.GT(sdkmath.LegacyOneDec()) {
		t.Errorf("expected spread above 1 for volatile prices, got %s", spread.String())
	}
}

// TestCoverageSpreadMonotoneInZ tests that a larger confidence multiplier
// never narrows the spread
func TestCoverageSpreadMonotoneInZ(t *testing.T) {
	prices := []sdkmath.LegacyDec{dec("100"), dec("105"), dec("98"), dec("107")}
	horizon := sdkmath.LegacyOneDec()

	low := CoverageSpread(dec("1"), horizon, prices)
	high := CoverageSpread(dec("3"), horizon, prices)
	if high.LT(low) {
		t.Errorf("expected spread at z=3 (%s) >= spread at z=1 (%s)", high.String(), low.String())
	}
}

// TestCoverageSpreadZeroHorizon tests that a degenerate horizon is neutral
func TestCoverageSpreadZeroHorizon(t *testing.T) {
	prices := []sdkmath.LegacyDec{dec("100"), dec("120"), dec("90")}
	spread := CoverageSpread(dec("1.96"), sdkmath.LegacyZeroDec(), prices)
	if !spread.Equal(sdkmath.LegacyOneDec()) {
		t.Errorf("expected spread 1 for zero horizon, got %s", spread.String())
	}
}

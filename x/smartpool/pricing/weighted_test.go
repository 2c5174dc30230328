package pricing

import (
	"testing"

	"cosmossdk.io/math"
)

func dec(s string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(s)
}

// TestSpotPrice tests the fee-inclusive spot price formula
func TestSpotPrice(t *testing.T) {
	testCases := []struct {
		name       string
		balanceIn  math.LegacyDec
		weightIn   math.LegacyDec
		balanceOut math.LegacyDec
		weightOut  math.LegacyDec
		swapFee    math.LegacyDec
		expected   math.LegacyDec
	}{
		{
			name:       "equal weights no fee",
			balanceIn:  dec("100"),
			weightIn:   dec("10"),
			balanceOut: dec("200"),
			weightOut:  dec("10"),
			swapFee:    math.LegacyZeroDec(),
			expected:   dec("0.5"),
		},
		{
			name:       "unequal weights no fee",
			balanceIn:  dec("100"),
			weightIn:   dec("10"),
			balanceOut: dec("100"),
			weightOut:  dec("40"),
			swapFee:    math.LegacyZeroDec(),
			expected:   dec("4"),
		},
		{
			name:       "fee scales the price up",
			balanceIn:  dec("100"),
			weightIn:   dec("10"),
			balanceOut: dec("200"),
			weightOut:  dec("10"),
			swapFee:    dec("0.003"),
			expected:   dec("0.5").Quo(dec("0.997")),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := SpotPrice(tc.balanceIn, tc.weightIn, tc.balanceOut, tc.weightOut, tc.swapFee)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !price.Equal(tc.expected) {
				t.Errorf("expected spot price %s, got %s", tc.expected.String(), price.String())
			}
		})
	}
}

// TestSpotPriceRejectsDegenerateInputs tests zero weights and balances
func TestSpotPriceRejectsDegenerateInputs(t *testing.T) {
	if _, err := SpotPrice(dec("100"), math.LegacyZeroDec(), dec("100"), dec("10"), math.LegacyZeroDec()); err == nil {
		t.Error("expected error for zero weight in")
	}
	if _, err := SpotPrice(dec("100"), dec("10"), dec("100"), math.LegacyZeroDec(), math.LegacyZeroDec()); err == nil {
		t.Error("expected error for zero weight out")
	}
	if _, err := SpotPrice(math.LegacyZeroDec(), dec("10"), dec("100"), dec("10"), math.LegacyZeroDec()); err == nil {
		t.Error("expected error for zero balance in")
	}
}

// TestCalcOutGivenInEqualWeights tests the exact-in closed form against the
// constant-product reduction for equal weights
func TestCalcOutGivenInEqualWeights(t *testing.T) {
	balanceIn := dec("1000")
	balanceOut := dec("1000")
	weight := dec("10")
	amountIn := dec("100")

	out, err := CalcOutGivenIn(balanceIn, weight, balanceOut, weight, amountIn, math.LegacyZeroDec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equal weights reduce to x*y=k: out = balOut*in/(balIn+in)
	expected := balanceOut.Mul(amountIn).Quo(balanceIn.Add(amountIn))
	tolerance := dec("0.000001")
	if out.Sub(expected).Abs().GT(tolerance) {
		t.Errorf("expected out ~%s, got %s", expected.String(), out.String())
	}
}

// TestCalcOutGivenInFeeReducesOutput tests that the fee shrinks the quote
func TestCalcOutGivenInFeeReducesOutput(t *testing.T) {
	balanceIn := dec("1000")
	balanceOut := dec("1000")
	weight := dec("10")
	amountIn := dec("100")

	clean, err := CalcOutGivenIn(balanceIn, weight, balanceOut, weight, amountIn, math.LegacyZeroDec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withFee, err := CalcOutGivenIn(balanceIn, weight, balanceOut, weight, amountIn, dec("0.003"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !withFee.LT(clean) {
		t.Errorf("expected fee quote %s below clean quote %s", withFee.String(), clean.String())
	}
}

// TestCalcInGivenOutInvertsCalcOutGivenIn tests that the two closed forms
// are inverses of each other
func TestCalcInGivenOutInvertsCalcOutGivenIn(t *testing.T) {
	balanceIn := dec("5000000")
	balanceOut := dec("200000000")
	weightIn := dec("5")
	weightOut := dec("5")
	amountIn := dec("1000")
	swapFee := dec("0.003")

	out, err := CalcOutGivenIn(balanceIn, weightIn, balanceOut, weightOut, amountIn, swapFee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := CalcInGivenOut(balanceIn, weightIn, balanceOut, weightOut, out, swapFee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tolerance := dec("0.001")
	if back.Sub(amountIn).Abs().GT(tolerance) {
		t.Errorf("expected required in ~%s, got %s", amountIn.String(), back.String())
	}
}

// TestRoundTripNeverProfits tests that swapping out and back never returns
// more than went in
func TestRoundTripNeverProfits(t *testing.T) {
	balanceA := dec("1000000")
	balanceB := dec("3000000")
	weightA := dec("10")
	weightB := dec("30")
	amountIn := dec("5000")

	for _, fee := range []math.LegacyDec{math.LegacyZeroDec(), dec("0.003"), dec("0.01")} {
		gotB, err := CalcOutGivenIn(balanceA, weightA, balanceB, weightB, amountIn, fee)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Swap back against the moved balances
		gotA, err := CalcOutGivenIn(balanceB.Sub(gotB), weightB, balanceA.Add(amountIn), weightA, gotB, fee)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotA.GT(amountIn) {
			t.Errorf("fee %s: round trip returned %s for %s in", fee.String(), gotA.String(), amountIn.String())
		}
	}
}

// TestCalcInGivenOutRejectsDrainingOutput tests the output bound
func TestCalcInGivenOutRejectsDrainingOutput(t *testing.T) {
	if _, err := CalcInGivenOut(dec("100"), dec("10"), dec("100"), dec("10"), dec("100"), math.LegacyZeroDec()); err == nil {
		t.Error("expected error when output equals the bound balance")
	}
	if _, err := CalcInGivenOut(dec("100"), dec("10"), dec("100"), dec("10"), dec("150"), math.LegacyZeroDec()); err == nil {
		t.Error("expected error when output exceeds the bound balance")
	}
}

// TestPow tests decimal exponentiation
func TestPow(t *testing.T) {
	testCases := []struct {
		name      string
		base      math.LegacyDec
		exp       math.LegacyDec
		expected  math.LegacyDec
		tolerance math.LegacyDec
	}{
		{
			name:      "integer exponent",
			base:      dec("2"),
			exp:       dec("3"),
			expected:  dec("8"),
			tolerance: math.LegacyZeroDec(),
		},
		{
			name:      "exponent one",
			base:      dec("1.5"),
			exp:       dec("1"),
			expected:  dec("1.5"),
			tolerance: math.LegacyZeroDec(),
		},
		{
			name:      "square root",
			base:      dec("1.5"),
			exp:       dec("0.5"),
			expected:  dec("1.224744871391589049"),
			tolerance: dec("0.00000001"),
		},
		{
			name:      "fractional base fractional exponent",
			base:      dec("0.8"),
			exp:       dec("2.5"),
			expected:  dec("0.572433402421875551"),
			tolerance: dec("0.00000001"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Pow(tc.base, tc.exp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Sub(tc.expected).Abs().GT(tc.tolerance) {
				t.Errorf("expected %s^%s ~%s, got %s", tc.base.String(), tc.exp.String(), tc.expected.String(), got.String())
			}
		})
	}
}

// TestPowRejectsBadBase tests bases outside the convergence region
func TestPowRejectsBadBase(t *testing.T) {
	if _, err := Pow(math.LegacyZeroDec(), dec("0.5")); err == nil {
		t.Error("expected error for zero base")
	}
	if _, err := Pow(dec("2.5"), dec("0.5")); err == nil {
		t.Error("expected error for fractional power of base above 2")
	}
}

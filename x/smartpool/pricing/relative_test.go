package pricing

import (
	"testing"

	"cosmossdk.io/math"
)

// TestRelativePrice tests decimal rescaling between feeds
func TestRelativePrice(t *testing.T) {
	testCases := []struct {
		name      string
		price1    math.LegacyDec
		decimals1 uint8
		price2    math.LegacyDec
		decimals2 uint8
		expected  math.LegacyDec
	}{
		{
			name:      "same decimals",
			price1:    dec("400000000000"), // 4000 at 8 decimals
			decimals1: 8,
			price2:    dec("100000000"), // 1 at 8 decimals
			decimals2: 8,
			expected:  dec("0.00025"),
		},
		{
			name:      "base has more decimals",
			price1:    dec("400000000000"), // 4000 at 8 decimals
			decimals1: 8,
			price2:    dec("9350000"), // 9.35 at 6 decimals
			decimals2: 6,
			expected:  dec("0.0023375"),
		},
		{
			name:      "quote has more decimals",
			price1:    dec("9350000"), // 9.35 at 6 decimals
			decimals1: 6,
			price2:    dec("100000000"), // 1 at 8 decimals
			decimals2: 8,
			expected:  dec("100000000").Quo(dec("9350000")).Quo(dec("100")),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rel := RelativePrice(tc.price1, tc.decimals1, tc.price2, tc.decimals2)
			if !rel.Equal(tc.expected) {
				t.Errorf("expected relative price %s, got %s", tc.expected.String(), rel.String())
			}
		})
	}
}

// TestRelativePriceNonPositive tests that broken observations yield zero
func TestRelativePriceNonPositive(t *testing.T) {
	if rel := RelativePrice(math.LegacyZeroDec(), 8, dec("100000000"), 8); !rel.IsZero() {
		t.Errorf("expected zero for zero base price, got %s", rel.String())
	}
	if rel := RelativePrice(dec("100000000"), 8, dec("-1"), 8); !rel.IsZero() {
		t.Errorf("expected zero for negative quote price, got %s", rel.String())
	}
}

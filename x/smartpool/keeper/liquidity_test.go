package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// tenPercentShares is 10% of the initial pool supply
var tenPercentShares = types.InitPoolSupply.QuoRaw(10)

// TestJoinPool tests the proportional all-token deposit
func TestJoinPool(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	traderAddr := sdk.MustAccAddressFromBech32(testTrader)
	bank.fund(traderAddr,
		sdk.NewCoin("weth", math.NewInt(1000000)),
		sdk.NewCoin("dai", math.NewInt(30000000)),
	)

	// 10% of the supply costs 10% of every balance, rounded up
	amountsIn, err := k.JoinPool(ctx, testTrader, poolId, tenPercentShares, nil)
	if err != nil {
		t.Fatalf("failed to join: %v", err)
	}
	if !amountsIn["weth"].Equal(dec("500000")) {
		t.Errorf("expected 500000 weth deposit, got %s", amountsIn["weth"].String())
	}
	if !amountsIn["dai"].Equal(dec("20000000")) {
		t.Errorf("expected 20000000 dai deposit, got %s", amountsIn["dai"].String())
	}

	if got := bank.balanceOf(traderAddr, types.ShareDenom(poolId)); !got.Equal(tenPercentShares) {
		t.Errorf("expected trader to hold %s shares, got %s", tenPercentShares.String(), got.String())
	}
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(types.InitPoolSupply.Add(tenPercentShares)) {
		t.Errorf("expected supply %s, got %s", types.InitPoolSupply.Add(tenPercentShares).String(), supply.String())
	}

	pool, _ := k.GetPool(ctx, poolId)
	if !pool.Records["weth"].Balance.Equal(dec("5500000")) {
		t.Errorf("expected weth balance 5500000, got %s", pool.Records["weth"].Balance.String())
	}
	if !pool.Records["dai"].Balance.Equal(dec("220000000")) {
		t.Errorf("expected dai balance 220000000, got %s", pool.Records["dai"].Balance.String())
	}
}

// TestJoinPoolHonorsLimits tests per-token slippage caps
func TestJoinPoolHonorsLimits(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	traderAddr := sdk.MustAccAddressFromBech32(testTrader)
	bank.fund(traderAddr,
		sdk.NewCoin("weth", math.NewInt(1000000)),
		sdk.NewCoin("dai", math.NewInt(30000000)),
	)

	limits := map[string]math.LegacyDec{"weth": dec("100")}
	if _, err := k.JoinPool(ctx, testTrader, poolId, tenPercentShares, limits); !errors.Is(err, types.ErrLimitIn) {
		t.Errorf("expected ErrLimitIn, got %v", err)
	}

	// Nothing moved on the failed join
	if got := bank.balanceOf(traderAddr, "weth"); !got.Equal(math.NewInt(1000000)) {
		t.Errorf("expected trader weth untouched, got %s", got.String())
	}
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(types.InitPoolSupply) {
		t.Errorf("expected supply unchanged, got %s", supply.String())
	}
}

// TestJoinPoolRequiresFinalized tests the finalize gate on joins
func TestJoinPoolRequiresFinalized(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	if _, err := k.JoinPool(ctx, testTrader, poolId, tenPercentShares, nil); !errors.Is(err, types.ErrNotFinalized) {
		t.Errorf("expected ErrNotFinalized, got %v", err)
	}
}

// TestJoinPoolRejectsZeroShares tests input validation
func TestJoinPoolRejectsZeroShares(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	if _, err := k.JoinPool(ctx, testTrader, poolId, math.ZeroInt(), nil); err == nil {
		t.Error("expected error for zero shares")
	}
	if _, err := k.JoinPool(ctx, testTrader, poolId, math.NewInt(-1), nil); err == nil {
		t.Error("expected error for negative shares")
	}
}

// TestExitPool tests the proportional all-token withdrawal
func TestExitPool(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	wethBefore := bank.balanceOf(controllerAddr, "weth")
	daiBefore := bank.balanceOf(controllerAddr, "dai")

	amountsOut, err := k.ExitPool(ctx, testController, poolId, tenPercentShares, nil)
	if err != nil {
		t.Fatalf("failed to exit: %v", err)
	}
	if !amountsOut["weth"].Equal(dec("500000")) {
		t.Errorf("expected 500000 weth out, got %s", amountsOut["weth"].String())
	}
	if !amountsOut["dai"].Equal(dec("20000000")) {
		t.Errorf("expected 20000000 dai out, got %s", amountsOut["dai"].String())
	}

	if got := bank.balanceOf(controllerAddr, "weth").Sub(wethBefore); !got.Equal(math.NewInt(500000)) {
		t.Errorf("expected 500000 weth received, got %s", got.String())
	}
	if got := bank.balanceOf(controllerAddr, "dai").Sub(daiBefore); !got.Equal(math.NewInt(20000000)) {
		t.Errorf("expected 20000000 dai received, got %s", got.String())
	}

	expectedSupply := types.InitPoolSupply.Sub(tenPercentShares)
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(expectedSupply) {
		t.Errorf("expected supply %s, got %s", expectedSupply.String(), supply.String())
	}

	pool, _ := k.GetPool(ctx, poolId)
	if !pool.Records["weth"].Balance.Equal(dec("4500000")) {
		t.Errorf("expected weth balance 4500000, got %s", pool.Records["weth"].Balance.String())
	}
}

// TestExitPoolExitFee tests that the fee is paid in shares and routed to
// the collector
func TestExitPoolExitFee(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	params := types.DefaultParams()
	params.ExitFee = dec("0.01")
	if err := k.SetParams(ctx, params); err != nil {
		t.Fatalf("failed to set params: %v", err)
	}

	amountsOut, err := k.ExitPool(ctx, testController, poolId, tenPercentShares, nil)
	if err != nil {
		t.Fatalf("failed to exit: %v", err)
	}

	// 1% of the shares withheld: refund ratio is 9.9%, truncated down
	if !amountsOut["weth"].Equal(dec("495000")) {
		t.Errorf("expected 495000 weth out, got %s", amountsOut["weth"].String())
	}
	if !amountsOut["dai"].Equal(dec("19800000")) {
		t.Errorf("expected 19800000 dai out, got %s", amountsOut["dai"].String())
	}

	feeShares := tenPercentShares.Quo(math.NewInt(100))
	if got := bank.balanceOf(FeeCollectorAddress(), types.ShareDenom(poolId)); !got.Equal(feeShares) {
		t.Errorf("expected fee collector to hold %s shares, got %s", feeShares.String(), got.String())
	}

	// Only the refund portion was burned
	expectedSupply := types.InitPoolSupply.Sub(tenPercentShares).Add(feeShares)
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(expectedSupply) {
		t.Errorf("expected supply %s, got %s", expectedSupply.String(), supply.String())
	}
}

// TestExitPoolHonorsLimits tests per-token minimum-out caps
func TestExitPoolHonorsLimits(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	limits := map[string]math.LegacyDec{"dai": dec("30000000")}
	if _, err := k.ExitPool(ctx, testController, poolId, tenPercentShares, limits); !errors.Is(err, types.ErrLimitOut) {
		t.Errorf("expected ErrLimitOut, got %v", err)
	}

	// Nothing burned on the failed exit
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(types.InitPoolSupply) {
		t.Errorf("expected supply unchanged, got %s", supply.String())
	}
}

// TestJoinThenExitRoundTrip tests that a join immediately unwound never
// extracts tokens from the pool
func TestJoinThenExitRoundTrip(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	traderAddr := sdk.MustAccAddressFromBech32(testTrader)
	bank.fund(traderAddr,
		sdk.NewCoin("weth", math.NewInt(1000000)),
		sdk.NewCoin("dai", math.NewInt(30000000)),
	)

	amountsIn, err := k.JoinPool(ctx, testTrader, poolId, tenPercentShares, nil)
	if err != nil {
		t.Fatalf("failed to join: %v", err)
	}
	amountsOut, err := k.ExitPool(ctx, testTrader, poolId, tenPercentShares, nil)
	if err != nil {
		t.Fatalf("failed to exit: %v", err)
	}

	for _, token := range []string{"weth", "dai"} {
		if amountsOut[token].GT(amountsIn[token]) {
			t.Errorf("%s: exit %s exceeds join %s", token, amountsOut[token].String(), amountsIn[token].String())
		}
	}
	if got := bank.balanceOf(traderAddr, types.ShareDenom(poolId)); !got.IsZero() {
		t.Errorf("expected trader to hold no shares, got %s", got.String())
	}
}

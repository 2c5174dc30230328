package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// TestBindToken tests binding, weight accounting and token custody
func TestBindToken(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	pool, err := k.GetPool(ctx, poolId)
	if err != nil {
		t.Fatalf("failed to load pool: %v", err)
	}
	if pool.NumTokens() != 2 {
		t.Fatalf("expected 2 bound tokens, got %d", pool.NumTokens())
	}
	if !pool.TotalWeight.Equal(dec("10")) {
		t.Errorf("expected total weight 10, got %s", pool.TotalWeight.String())
	}
	if err := pool.ValidateInvariants(); err != nil {
		t.Errorf("invariants violated: %v", err)
	}

	// Bind-time custody: the pool address holds the deposited balances
	poolAddr := PoolAddress(poolId)
	if got := bank.balanceOf(poolAddr, "weth"); !got.Equal(math.NewInt(5000000)) {
		t.Errorf("expected pool to hold 5000000 weth, got %s", got.String())
	}
	if got := bank.balanceOf(poolAddr, "dai"); !got.Equal(math.NewInt(200000000)) {
		t.Errorf("expected pool to hold 200000000 dai, got %s", got.String())
	}

	// The feed snapshot anchors the adjusted weight at bind time
	binding, ok := pool.PriceBindings["weth"]
	if !ok {
		t.Fatal("expected weth price binding")
	}
	if binding.FeedId != "eth-usd" {
		t.Errorf("expected feed eth-usd, got %s", binding.FeedId)
	}
	if !binding.InitialPrice.Equal(dec("400000000000")) {
		t.Errorf("expected initial price 400000000000, got %s", binding.InitialPrice.String())
	}
}

// TestBindTokenRejections tests the bind validation battery
func TestBindTokenRejections(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	// Duplicate token
	if err := k.BindToken(ctx, testController, poolId, "weth", dec("1000"), dec("5"), "eth-usd"); !errors.Is(err, types.ErrTokenBound) {
		t.Errorf("expected ErrTokenBound, got %v", err)
	}
	// Non-controller caller
	if err := k.BindToken(ctx, testTrader, poolId, "uatom", dec("1000"), dec("5"), "eth-usd"); !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
	// Weight below minimum
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000"), dec("0.5"), "eth-usd"); !errors.Is(err, types.ErrWeightOutOfRange) {
		t.Errorf("expected ErrWeightOutOfRange, got %v", err)
	}
	// Weight above maximum
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000"), dec("51"), "eth-usd"); !errors.Is(err, types.ErrWeightOutOfRange) {
		t.Errorf("expected ErrWeightOutOfRange, got %v", err)
	}
	// Total weight cap: 10 bound already, 41 breaks 50
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000"), dec("41"), "eth-usd"); !errors.Is(err, types.ErrMaxTotalWeight) {
		t.Errorf("expected ErrMaxTotalWeight, got %v", err)
	}
	// Unknown feed
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000"), dec("5"), "no-such-feed"); !errors.Is(err, types.ErrFeedNotBound) {
		t.Errorf("expected ErrFeedNotBound, got %v", err)
	}
}

// TestBindTokenRequiresWholeBalance tests that bound balances are whole base
// units at or above the one-unit minimum, so the recorded balance matches
// the coins actually pulled into custody
func TestBindTokenRequiresWholeBalance(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	feeds.addFeed("atom-usd", 8)
	feeds.addRound("atom-usd", dec("900000000"), testBlockTime.Unix())
	bank.fund(sdk.MustAccAddressFromBech32(testController), sdk.NewCoin("uatom", math.NewInt(1000000)))

	// Fractional balance
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000.5"), dec("5"), "atom-usd"); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for fractional balance, got %v", err)
	}
	// Below one base unit
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("0.000000000001"), dec("5"), "atom-usd"); !errors.Is(err, types.ErrBalanceOutOfRange) {
		t.Errorf("expected ErrBalanceOutOfRange for sub-unit balance, got %v", err)
	}
	// Fractional rebind of an already bound token
	if err := k.RebindToken(ctx, testController, poolId, "weth", dec("5000000.25"), dec("5"), "eth-usd"); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for fractional rebind balance, got %v", err)
	}

	// Nothing bound, nothing pulled
	pool, err := k.GetPool(ctx, poolId)
	if err != nil {
		t.Fatalf("failed to load pool: %v", err)
	}
	if pool.IsBound("uatom") {
		t.Error("expected uatom to stay unbound")
	}
	if got := bank.balanceOf(PoolAddress(poolId), "uatom"); !got.IsZero() {
		t.Errorf("expected no uatom in custody, got %s", got.String())
	}
}

// TestBindTokenRequiresUsableFeed tests the bind-time price anchor checks
func TestBindTokenRequiresUsableFeed(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)

	feeds.addFeed("empty-usd", 8)
	feeds.addFeed("zero-usd", 8)
	feeds.addRound("zero-usd", math.LegacyZeroDec(), testBlockTime.Unix())

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	bank.fund(controllerAddr, sdk.NewCoin("uatom", math.NewInt(1000000)))

	pool, err := k.CreatePool(ctx, testController)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	// Feed with no rounds has no anchor price
	if err := k.BindToken(ctx, testController, pool.Id, "uatom", dec("1000"), dec("5"), "empty-usd"); !errors.Is(err, types.ErrFeedNotBound) {
		t.Errorf("expected ErrFeedNotBound for feed without rounds, got %v", err)
	}
	// Non-positive latest price would make the adjusted weight undefined
	if err := k.BindToken(ctx, testController, pool.Id, "uatom", dec("1000"), dec("5"), "zero-usd"); err == nil {
		t.Error("expected error for non-positive anchor price")
	}
}

// TestBindAfterFinalize tests the finalize latch on the binding set
func TestBindAfterFinalize(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000"), dec("5"), "eth-usd"); !errors.Is(err, types.ErrAlreadyFinalized) {
		t.Errorf("expected ErrAlreadyFinalized on bind, got %v", err)
	}
	if err := k.UnbindToken(ctx, testController, poolId, "weth"); !errors.Is(err, types.ErrAlreadyFinalized) {
		t.Errorf("expected ErrAlreadyFinalized on unbind, got %v", err)
	}
	if err := k.RebindToken(ctx, testController, poolId, "weth", dec("6000000"), dec("5"), "eth-usd"); !errors.Is(err, types.ErrAlreadyFinalized) {
		t.Errorf("expected ErrAlreadyFinalized on rebind, got %v", err)
	}
}

// TestUnbindKeepsTokenListDense tests the swap-remove on unbind
func TestUnbindKeepsTokenListDense(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	feeds.addFeed("atom-usd", 6)
	feeds.addRound("atom-usd", dec("9350000"), testBlockTime.Unix())
	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	bank.fund(controllerAddr, sdk.NewCoin("uatom", math.NewInt(1000000)))
	if err := k.BindToken(ctx, testController, poolId, "uatom", dec("1000000"), dec("10"), "atom-usd"); err != nil {
		t.Fatalf("failed to bind uatom: %v", err)
	}

	wethBefore := bank.balanceOf(controllerAddr, "weth")

	// Unbind the first token: uatom should take slot 0
	if err := k.UnbindToken(ctx, testController, poolId, "weth"); err != nil {
		t.Fatalf("failed to unbind weth: %v", err)
	}

	pool, err := k.GetPool(ctx, poolId)
	if err != nil {
		t.Fatalf("failed to load pool: %v", err)
	}
	if pool.NumTokens() != 2 {
		t.Fatalf("expected 2 tokens after unbind, got %d", pool.NumTokens())
	}
	if pool.Tokens[0] != "uatom" {
		t.Errorf("expected uatom moved into slot 0, got %s", pool.Tokens[0])
	}
	if pool.Records["uatom"].Index != 0 {
		t.Errorf("expected uatom record index 0, got %d", pool.Records["uatom"].Index)
	}
	if pool.IsBound("weth") {
		t.Error("expected weth to be unbound")
	}
	if !pool.TotalWeight.Equal(dec("15")) {
		t.Errorf("expected total weight 15 after unbind, got %s", pool.TotalWeight.String())
	}
	if err := pool.ValidateInvariants(); err != nil {
		t.Errorf("invariants violated after unbind: %v", err)
	}

	// Full balance returned, zero exit fee by default
	wethAfter := bank.balanceOf(controllerAddr, "weth")
	if !wethAfter.Sub(wethBefore).Equal(math.NewInt(5000000)) {
		t.Errorf("expected 5000000 weth returned, got %s", wethAfter.Sub(wethBefore).String())
	}
}

// TestUnbindRoutesExitFee tests the exit fee split on unbind
func TestUnbindRoutesExitFee(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	params := types.DefaultParams()
	params.ExitFee = dec("0.01")
	if err := k.SetParams(ctx, params); err != nil {
		t.Fatalf("failed to set params: %v", err)
	}

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	wethBefore := bank.balanceOf(controllerAddr, "weth")

	if err := k.UnbindToken(ctx, testController, poolId, "weth"); err != nil {
		t.Fatalf("failed to unbind weth: %v", err)
	}

	// 1% of 5000000 withheld
	wethAfter := bank.balanceOf(controllerAddr, "weth")
	if !wethAfter.Sub(wethBefore).Equal(math.NewInt(4950000)) {
		t.Errorf("expected 4950000 weth returned, got %s", wethAfter.Sub(wethBefore).String())
	}
	if fee := bank.balanceOf(FeeCollectorAddress(), "weth"); !fee.Equal(math.NewInt(50000)) {
		t.Errorf("expected 50000 weth exit fee, got %s", fee.String())
	}
}

// TestRebindToken tests balance deltas in both directions
func TestRebindToken(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	poolAddr := PoolAddress(poolId)

	// Increase pulls the delta from the controller
	if err := k.RebindToken(ctx, testController, poolId, "weth", dec("6000000"), dec("8"), "eth-usd"); err != nil {
		t.Fatalf("failed to rebind up: %v", err)
	}
	pool, _ := k.GetPool(ctx, poolId)
	if !pool.Records["weth"].Balance.Equal(dec("6000000")) {
		t.Errorf("expected balance 6000000, got %s", pool.Records["weth"].Balance.String())
	}
	if !pool.Records["weth"].Denorm.Equal(dec("8")) {
		t.Errorf("expected denorm 8, got %s", pool.Records["weth"].Denorm.String())
	}
	if !pool.TotalWeight.Equal(dec("13")) {
		t.Errorf("expected total weight 13, got %s", pool.TotalWeight.String())
	}
	if got := bank.balanceOf(poolAddr, "weth"); !got.Equal(math.NewInt(6000000)) {
		t.Errorf("expected pool to hold 6000000 weth, got %s", got.String())
	}

	// Decrease pushes the delta back
	before := bank.balanceOf(controllerAddr, "weth")
	if err := k.RebindToken(ctx, testController, poolId, "weth", dec("5000000"), dec("5"), "eth-usd"); err != nil {
		t.Fatalf("failed to rebind down: %v", err)
	}
	after := bank.balanceOf(controllerAddr, "weth")
	if !after.Sub(before).Equal(math.NewInt(1000000)) {
		t.Errorf("expected 1000000 weth returned, got %s", after.Sub(before).String())
	}
	pool, _ = k.GetPool(ctx, poolId)
	if !pool.TotalWeight.Equal(dec("10")) {
		t.Errorf("expected total weight 10, got %s", pool.TotalWeight.String())
	}
	if err := pool.ValidateInvariants(); err != nil {
		t.Errorf("invariants violated after rebind: %v", err)
	}
}

// TestRebindReanchorsFeedPrice tests that rebind snapshots a fresh price
func TestRebindReanchorsFeedPrice(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	feeds.addRound("eth-usd", dec("440000000000"), testBlockTime.Unix())
	if err := k.RebindToken(ctx, testController, poolId, "weth", dec("5000000"), dec("5"), "eth-usd"); err != nil {
		t.Fatalf("failed to rebind: %v", err)
	}

	pool, _ := k.GetPool(ctx, poolId)
	if !pool.PriceBindings["weth"].InitialPrice.Equal(dec("440000000000")) {
		t.Errorf("expected re-anchored price 440000000000, got %s", pool.PriceBindings["weth"].InitialPrice.String())
	}
}

// TestGulp tests balance reconciliation with direct transfers
func TestGulp(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	// Tokens arriving outside bind/join are invisible until gulped
	bank.fund(PoolAddress(poolId), sdk.NewCoin("weth", math.NewInt(250000)))

	pool, _ := k.GetPool(ctx, poolId)
	if !pool.Records["weth"].Balance.Equal(dec("5000000")) {
		t.Fatalf("expected declared balance 5000000 before gulp, got %s", pool.Records["weth"].Balance.String())
	}

	balance, err := k.Gulp(ctx, poolId, "weth")
	if err != nil {
		t.Fatalf("failed to gulp: %v", err)
	}
	if !balance.Equal(dec("5250000")) {
		t.Errorf("expected gulped balance 5250000, got %s", balance.String())
	}
	pool, _ = k.GetPool(ctx, poolId)
	if !pool.Records["weth"].Balance.Equal(dec("5250000")) {
		t.Errorf("expected declared balance 5250000 after gulp, got %s", pool.Records["weth"].Balance.String())
	}

	// Idempotent absent further transfers
	again, err := k.Gulp(ctx, poolId, "weth")
	if err != nil {
		t.Fatalf("failed to gulp twice: %v", err)
	}
	if !again.Equal(balance) {
		t.Errorf("expected idempotent gulp, got %s then %s", balance.String(), again.String())
	}

	if _, err := k.Gulp(ctx, poolId, "uatom"); !errors.Is(err, types.ErrTokenNotBound) {
		t.Errorf("expected ErrTokenNotBound, got %v", err)
	}
}

// TestFinalize tests the latch and the initial share mint
func TestFinalize(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	minted, err := k.Finalize(ctx, testController, poolId)
	if err != nil {
		t.Fatalf("failed to finalize: %v", err)
	}
	if !minted.Equal(types.InitPoolSupply) {
		t.Errorf("expected %s shares minted, got %s", types.InitPoolSupply.String(), minted.String())
	}

	pool, _ := k.GetPool(ctx, poolId)
	if !pool.Finalized {
		t.Error("expected pool to be finalized")
	}
	if !pool.PublicSwap {
		t.Error("expected finalize to enable public swap")
	}

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	if got := bank.balanceOf(controllerAddr, types.ShareDenom(poolId)); !got.Equal(types.InitPoolSupply) {
		t.Errorf("expected controller to hold %s shares, got %s", types.InitPoolSupply.String(), got.String())
	}
	if supply := k.TotalShares(ctx, poolId); !supply.Equal(types.InitPoolSupply) {
		t.Errorf("expected share supply %s, got %s", types.InitPoolSupply.String(), supply.String())
	}

	if _, err := k.Finalize(ctx, testController, poolId); !errors.Is(err, types.ErrAlreadyFinalized) {
		t.Errorf("expected ErrAlreadyFinalized, got %v", err)
	}
}

// TestFinalizeRequiresMinTokens tests the two-token floor
func TestFinalizeRequiresMinTokens(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)

	feeds.addFeed("eth-usd", 8)
	feeds.addRound("eth-usd", dec("400000000000"), testBlockTime.Unix())
	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	bank.fund(controllerAddr, sdk.NewCoin("weth", math.NewInt(10000000)))

	pool, err := k.CreatePool(ctx, testController)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	if _, err := k.Finalize(ctx, testController, pool.Id); !errors.Is(err, types.ErrMinTokens) {
		t.Errorf("expected ErrMinTokens for empty pool, got %v", err)
	}

	if err := k.BindToken(ctx, testController, pool.Id, "weth", dec("5000000"), dec("5"), "eth-usd"); err != nil {
		t.Fatalf("failed to bind weth: %v", err)
	}
	if _, err := k.Finalize(ctx, testController, pool.Id); !errors.Is(err, types.ErrMinTokens) {
		t.Errorf("expected ErrMinTokens for single-token pool, got %v", err)
	}
}

// TestSetSwapFee tests the fee range gate
func TestSetSwapFee(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)

	if err := k.SetSwapFee(ctx, testController, poolId, dec("0.01")); err != nil {
		t.Fatalf("failed to set swap fee: %v", err)
	}
	pool, _ := k.GetPool(ctx, poolId)
	if !pool.SwapFee.Equal(dec("0.01")) {
		t.Errorf("expected swap fee 0.01, got %s", pool.SwapFee.String())
	}

	if err := k.SetSwapFee(ctx, testController, poolId, dec("0.2")); !errors.Is(err, types.ErrFeeOutOfRange) {
		t.Errorf("expected ErrFeeOutOfRange, got %v", err)
	}
	if err := k.SetSwapFee(ctx, testController, poolId, math.LegacyZeroDec()); !errors.Is(err, types.ErrFeeOutOfRange) {
		t.Errorf("expected ErrFeeOutOfRange for fee below min, got %v", err)
	}
	if err := k.SetSwapFee(ctx, testTrader, poolId, dec("0.01")); !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
}

// TestSetControllerSurvivesFinalize tests that control transfer stays open
// after the latch
func TestSetControllerSurvivesFinalize(t *testing.T) {
	k, ctx, bank, feeds := setupKeeper(t)
	poolId := setupFinalizedPool(t, k, ctx, bank, feeds)

	if err := k.SetController(ctx, testController, poolId, testTrader); err != nil {
		t.Fatalf("failed to transfer control: %v", err)
	}
	pool, _ := k.GetPool(ctx, poolId)
	if pool.Controller != testTrader {
		t.Errorf("expected controller %s, got %s", testTrader, pool.Controller)
	}

	// Old controller is locked out
	if err := k.SetController(ctx, testController, poolId, testController); !errors.Is(err, types.ErrNotController) {
		t.Errorf("expected ErrNotController, got %v", err)
	}
}

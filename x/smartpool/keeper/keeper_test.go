package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	pricefeedtypes "github.com/dynaswap/dynaswap/x/pricefeed/types"
	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

var (
	testController = sdk.AccAddress([]byte("controller__________")).String()
	testTrader     = sdk.AccAddress([]byte("trader______________")).String()

	testBlockTime = time.Unix(1700000000, 0)
)

func dec(s string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(s)
}

// mockBankKeeper is an in-memory bank for keeper tests. Balances are keyed
// by bech32 address; module accounts resolve through their module address.
type mockBankKeeper struct {
	balances map[string]sdk.Coins
	supply   map[string]math.Int
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{
		balances: make(map[string]sdk.Coins),
		supply:   make(map[string]math.Int),
	}
}

func (m *mockBankKeeper) fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	// NewCoins sorts by denom; Coins.Add panics on unsorted input
	m.balances[addr.String()] = m.balances[addr.String()].Add(sdk.NewCoins(coins...)...)
}

func (m *mockBankKeeper) balanceOf(addr sdk.AccAddress, denom string) math.Int {
	return m.balances[addr.String()].AmountOf(denom)
}

func (m *mockBankKeeper) move(from, to sdk.AccAddress, amt sdk.Coins) error {
	have := m.balances[from.String()]
	if !have.IsAllGTE(amt) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from.String(), have.String(), amt.String())
	}
	m.balances[from.String()] = have.Sub(amt...)
	m.balances[to.String()] = m.balances[to.String()].Add(amt...)
	return nil
}

func (m *mockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName)
	m.balances[addr.String()] = m.balances[addr.String()].Add(amt...)
	for _, coin := range amt {
		cur, ok := m.supply[coin.Denom]
		if !ok {
			cur = math.ZeroInt()
		}
		m.supply[coin.Denom] = cur.Add(coin.Amount)
	}
	return nil
}

func (m *mockBankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName)
	have := m.balances[addr.String()]
	if !have.IsAllGTE(amt) {
		return fmt.Errorf("insufficient module funds to burn %s", amt.String())
	}
	m.balances[addr.String()] = have.Sub(amt...)
	for _, coin := range amt {
		m.supply[coin.Denom] = m.supply[coin.Denom].Sub(coin.Amount)
	}
	return nil
}

func (m *mockBankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.move(fromAddr, toAddr, amt)
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.move(senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.move(authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

func (m *mockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}

func (m *mockBankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	amount, ok := m.supply[denom]
	if !ok {
		amount = math.ZeroInt()
	}
	return sdk.NewCoin(denom, amount)
}

// mockPricefeedKeeper is an in-memory feed registry for keeper tests
type mockPricefeedKeeper struct {
	feeds  map[string]pricefeedtypes.Feed
	rounds map[string]map[uint64]pricefeedtypes.Round
}

func newMockPricefeedKeeper() *mockPricefeedKeeper {
	return &mockPricefeedKeeper{
		feeds:  make(map[string]pricefeedtypes.Feed),
		rounds: make(map[string]map[uint64]pricefeedtypes.Round),
	}
}

func (m *mockPricefeedKeeper) addFeed(feedId string, decimals uint8) {
	m.feeds[feedId] = pricefeedtypes.Feed{
		Id:       feedId,
		Decimals: decimals,
	}
	m.rounds[feedId] = make(map[uint64]pricefeedtypes.Round)
}

func (m *mockPricefeedKeeper) addRound(feedId string, price math.LegacyDec, timestamp int64) {
	feed := m.feeds[feedId]
	feed.LatestRound++
	m.feeds[feedId] = feed
	m.rounds[feedId][feed.LatestRound] = pricefeedtypes.Round{
		RoundId:   feed.LatestRound,
		Price:     price,
		Timestamp: timestamp,
	}
}

func (m *mockPricefeedKeeper) GetFeed(_ sdk.Context, feedId string) (pricefeedtypes.Feed, bool) {
	feed, ok := m.feeds[feedId]
	return feed, ok
}

func (m *mockPricefeedKeeper) LatestRound(_ sdk.Context, feedId string) (pricefeedtypes.Round, bool) {
	feed, ok := m.feeds[feedId]
	if !ok || feed.LatestRound == 0 {
		return pricefeedtypes.Round{}, false
	}
	round, ok := m.rounds[feedId][feed.LatestRound]
	return round, ok
}

func (m *mockPricefeedKeeper) GetRound(_ sdk.Context, feedId string, roundId uint64) (pricefeedtypes.Round, bool) {
	rounds, ok := m.rounds[feedId]
	if !ok {
		return pricefeedtypes.Round{}, false
	}
	round, ok := rounds[roundId]
	return round, ok
}

// setupKeeper creates a test keeper backed by an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, sdk.Context, *mockBankKeeper, *mockPricefeedKeeper) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(testBlockTime)

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := newMockBankKeeper()
	feeds := newMockPricefeedKeeper()
	authority := authtypes.NewModuleAddress("gov").String()
	keeper := NewKeeper(cdc, storeKey, bank, feeds, authority, log.NewNopLogger())

	return keeper, ctx, bank, feeds
}

// setupWethDaiPool seeds the feeds, funds the controller and binds a
// weth/dai pool with equal weights. The pool is left unfinalized.
func setupWethDaiPool(t *testing.T, k *Keeper, ctx sdk.Context, bank *mockBankKeeper, feeds *mockPricefeedKeeper) uint64 {
	t.Helper()

	feeds.addFeed("eth-usd", 8)
	feeds.addFeed("dai-usd", 8)
	feeds.addRound("eth-usd", dec("400000000000"), testBlockTime.Unix()) // 4000 at 8 decimals
	feeds.addRound("dai-usd", dec("100000000"), testBlockTime.Unix())    // 1 at 8 decimals

	controllerAddr := sdk.MustAccAddressFromBech32(testController)
	bank.fund(controllerAddr,
		sdk.NewCoin("weth", math.NewInt(10000000)),
		sdk.NewCoin("dai", math.NewInt(400000000)),
	)

	pool, err := k.CreatePool(ctx, testController)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	if err := k.BindToken(ctx, testController, pool.Id, "weth", dec("5000000"), dec("5"), "eth-usd"); err != nil {
		t.Fatalf("failed to bind weth: %v", err)
	}
	if err := k.BindToken(ctx, testController, pool.Id, "dai", dec("200000000"), dec("5"), "dai-usd"); err != nil {
		t.Fatalf("failed to bind dai: %v", err)
	}
	return pool.Id
}

// setupFinalizedPool is setupWethDaiPool plus finalization
func setupFinalizedPool(t *testing.T, k *Keeper, ctx sdk.Context, bank *mockBankKeeper, feeds *mockPricefeedKeeper) uint64 {
	t.Helper()

	poolId := setupWethDaiPool(t, k, ctx, bank, feeds)
	if _, err := k.Finalize(ctx, testController, poolId); err != nil {
		t.Fatalf("failed to finalize pool: %v", err)
	}
	return poolId
}

// TestCreatePool tests pool allocation and id assignment
func TestCreatePool(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)

	pool, err := k.CreatePool(ctx, testController)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Id != 1 {
		t.Errorf("expected pool id 1, got %d", pool.Id)
	}
	if pool.Controller != testController {
		t.Errorf("expected controller %s, got %s", testController, pool.Controller)
	}
	if pool.Finalized || pool.PublicSwap {
		t.Error("expected new pool to be unfinalized with public swap off")
	}
	if !pool.SwapFee.Equal(types.DefaultSwapFee) {
		t.Errorf("expected default swap fee %s, got %s", types.DefaultSwapFee.String(), pool.SwapFee.String())
	}

	second, err := k.CreatePool(ctx, testController)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Id != 2 {
		t.Errorf("expected pool id 2, got %d", second.Id)
	}

	stored, err := k.GetPool(ctx, 1)
	if err != nil {
		t.Fatalf("failed to load pool: %v", err)
	}
	if stored.Id != 1 {
		t.Errorf("expected stored pool id 1, got %d", stored.Id)
	}
}

// TestCreatePoolRejectsBadAddress tests creator validation
func TestCreatePoolRejectsBadAddress(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	if _, err := k.CreatePool(ctx, "not-an-address"); err == nil {
		t.Error("expected error for malformed creator address")
	}
}

// TestGetPoolNotFound tests the missing-pool error
func TestGetPoolNotFound(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)
	if _, err := k.GetPool(ctx, 42); err == nil {
		t.Error("expected error for unknown pool")
	}
}

// TestPausedBlocksMutations tests the registry pause switch
func TestPausedBlocksMutations(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)

	params := types.DefaultParams()
	params.Paused = true
	if err := k.SetParams(ctx, params); err != nil {
		t.Fatalf("failed to set params: %v", err)
	}

	if _, err := k.CreatePool(ctx, testController); err != types.ErrPaused {
		t.Errorf("expected ErrPaused, got %v", err)
	}
}

// TestParamsRoundTrip tests parameter storage and validation
func TestParamsRoundTrip(t *testing.T) {
	k, ctx, _, _ := setupKeeper(t)

	// Defaults come back when nothing is stored
	params := k.GetParams(ctx)
	if !params.ExitFee.IsZero() {
		t.Errorf("expected default exit fee 0, got %s", params.ExitFee.String())
	}

	params.ExitFee = dec("0.01")
	params.MaxPriceAgeSeconds = 600
	if err := k.SetParams(ctx, params); err != nil {
		t.Fatalf("failed to set params: %v", err)
	}
	got := k.GetParams(ctx)
	if !got.ExitFee.Equal(dec("0.01")) {
		t.Errorf("expected exit fee 0.01, got %s", got.ExitFee.String())
	}
	if got.MaxPriceAgeSeconds != 600 {
		t.Errorf("expected max price age 600, got %d", got.MaxPriceAgeSeconds)
	}

	// Out-of-range fee rejected
	bad := types.DefaultParams()
	bad.ExitFee = dec("1.5")
	if err := k.SetParams(ctx, bad); err == nil {
		t.Error("expected error for exit fee above 1")
	}
}

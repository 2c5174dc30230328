package keeper

import (
	"errors"
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

	"github.com/dynaswap/dynaswap/x/pricefeed/types"
)

var (
	testOwner    = sdk.AccAddress([]byte("oracle-owner________")).String()
	testStranger = sdk.AccAddress([]byte("stranger____________")).String()
)

func dec(s string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(s)
}

// setupKeeper creates a test keeper backed by an in-memory store
func setupKeeper(tb testing.TB) (*Keeper, sdk.Context) {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(time.Unix(1700000000, 0))

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	authority := authtypes.NewModuleAddress("gov").String()
	keeper := NewKeeper(cdc, storeKey, authority, log.NewNopLogger())

	return keeper, ctx
}

// TestRegisterFeed tests feed registration and duplicate rejection
func TestRegisterFeed(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.RegisterFeed(ctx, testOwner, "eth-usd", "ETH / USD", 8); err != nil {
		t.Fatalf("failed to register feed: %v", err)
	}

	feed, ok := k.GetFeed(ctx, "eth-usd")
	if !ok {
		t.Fatal("expected feed to exist")
	}
	if feed.Id != "eth-usd" {
		t.Errorf("expected feed id eth-usd, got %s", feed.Id)
	}
	if feed.Decimals != 8 {
		t.Errorf("expected 8 decimals, got %d", feed.Decimals)
	}
	if feed.Owner != testOwner {
		t.Errorf("expected owner %s, got %s", testOwner, feed.Owner)
	}
	if feed.LatestRound != 0 {
		t.Errorf("expected no rounds, got latest round %d", feed.LatestRound)
	}

	if err := k.RegisterFeed(ctx, testOwner, "eth-usd", "again", 8); !errors.Is(err, types.ErrFeedExists) {
		t.Errorf("expected ErrFeedExists, got %v", err)
	}
}

// TestRegisterFeedRejectsBadDecimals tests the decimals cap
func TestRegisterFeedRejectsBadDecimals(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.RegisterFeed(ctx, testOwner, "weird-usd", "too precise", 19); !errors.Is(err, types.ErrInvalidDecimals) {
		t.Errorf("expected ErrInvalidDecimals, got %v", err)
	}
	// 18 is the cap, not past it
	if err := k.RegisterFeed(ctx, testOwner, "fine-usd", "max precision", 18); err != nil {
		t.Errorf("expected 18 decimals to register, got %v", err)
	}
}

// TestSubmitRound tests sequential round ids and latest-round tracking
func TestSubmitRound(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.RegisterFeed(ctx, testOwner, "eth-usd", "ETH / USD", 8); err != nil {
		t.Fatalf("failed to register feed: %v", err)
	}

	base := ctx.BlockTime().Unix()
	for i := int64(1); i <= 3; i++ {
		roundId, err := k.SubmitRound(ctx, testOwner, "eth-usd", dec("400000000000").MulInt64(i), base+i)
		if err != nil {
			t.Fatalf("failed to submit round %d: %v", i, err)
		}
		if roundId != uint64(i) {
			t.Errorf("expected round id %d, got %d", i, roundId)
		}
	}

	latest, ok := k.LatestRound(ctx, "eth-usd")
	if !ok {
		t.Fatal("expected a latest round")
	}
	if latest.RoundId != 3 {
		t.Errorf("expected latest round 3, got %d", latest.RoundId)
	}
	if !latest.Price.Equal(dec("1200000000000")) {
		t.Errorf("expected latest price 1200000000000, got %s", latest.Price.String())
	}

	round, ok := k.GetRound(ctx, "eth-usd", 2)
	if !ok {
		t.Fatal("expected round 2 to exist")
	}
	if !round.Price.Equal(dec("800000000000")) {
		t.Errorf("expected round 2 price 800000000000, got %s", round.Price.String())
	}

	rounds := k.GetRounds(ctx, "eth-usd")
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.RoundId != uint64(i+1) {
			t.Errorf("expected ascending round ids, got %d at position %d", r.RoundId, i)
		}
	}
}

// TestSubmitRoundRejections tests the submit validation battery
func TestSubmitRoundRejections(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.RegisterFeed(ctx, testOwner, "eth-usd", "ETH / USD", 8); err != nil {
		t.Fatalf("failed to register feed: %v", err)
	}
	base := ctx.BlockTime().Unix()
	if _, err := k.SubmitRound(ctx, testOwner, "eth-usd", dec("400000000000"), base); err != nil {
		t.Fatalf("failed to submit round: %v", err)
	}

	// Unknown feed
	if _, err := k.SubmitRound(ctx, testOwner, "no-such-feed", dec("1"), base); !errors.Is(err, types.ErrFeedNotFound) {
		t.Errorf("expected ErrFeedNotFound, got %v", err)
	}
	// Non-owner submitter
	if _, err := k.SubmitRound(ctx, testStranger, "eth-usd", dec("1"), base+1); !errors.Is(err, types.ErrNotFeedOwner) {
		t.Errorf("expected ErrNotFeedOwner, got %v", err)
	}
	// Timestamp regression
	if _, err := k.SubmitRound(ctx, testOwner, "eth-usd", dec("1"), base-10); !errors.Is(err, types.ErrNonIncreasingRound) {
		t.Errorf("expected ErrNonIncreasingRound, got %v", err)
	}
	// Equal timestamp is allowed
	if _, err := k.SubmitRound(ctx, testOwner, "eth-usd", dec("410000000000"), base); err != nil {
		t.Errorf("expected equal timestamp to pass, got %v", err)
	}
}

// TestLatestRoundEmptyFeed tests the no-rounds case
func TestLatestRoundEmptyFeed(t *testing.T) {
	k, ctx := setupKeeper(t)

	if _, ok := k.LatestRound(ctx, "no-such-feed"); ok {
		t.Error("expected no latest round for unknown feed")
	}

	if err := k.RegisterFeed(ctx, testOwner, "eth-usd", "ETH / USD", 8); err != nil {
		t.Fatalf("failed to register feed: %v", err)
	}
	if _, ok := k.LatestRound(ctx, "eth-usd"); ok {
		t.Error("expected no latest round before first submit")
	}
}

// TestGetAllFeeds tests the feed listing
func TestGetAllFeeds(t *testing.T) {
	k, ctx := setupKeeper(t)

	for _, id := range []string{"atom-usd", "dai-usd", "eth-usd"} {
		if err := k.RegisterFeed(ctx, testOwner, id, id, 8); err != nil {
			t.Fatalf("failed to register %s: %v", id, err)
		}
	}
	feeds := k.GetAllFeeds(ctx)
	if len(feeds) != 3 {
		t.Errorf("expected 3 feeds, got %d", len(feeds))
	}
}

// TestDecimals tests the decimals lookup
func TestDecimals(t *testing.T) {
	k, ctx := setupKeeper(t)

	if err := k.RegisterFeed(ctx, testOwner, "atom-usd", "ATOM / USD", 6); err != nil {
		t.Fatalf("failed to register feed: %v", err)
	}
	decimals, err := k.Decimals(ctx, "atom-usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decimals != 6 {
		t.Errorf("expected 6 decimals, got %d", decimals)
	}
	if _, err := k.Decimals(ctx, "no-such-feed"); !errors.Is(err, types.ErrFeedNotFound) {
		t.Errorf("expected ErrFeedNotFound, got %v", err)
	}
}

package api

import (
	"context"
	"testing"

	"cosmossdk.io/math"

	"github.com/dynaswap/dynaswap/api/types"
)

// TestMockServiceListPools tests the seeded pool listing
func TestMockServiceListPools(t *testing.T) {
	s := NewMockService()

	resp, err := s.ListPools(context.Background())
	if err != nil {
		t.Fatalf("failed to list pools: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 seeded pools, got %d", resp.Total)
	}
	// Sorted by id
	if resp.Pools[0].PoolID != 1 || resp.Pools[1].PoolID != 2 {
		t.Errorf("expected pools ordered 1,2, got %d,%d", resp.Pools[0].PoolID, resp.Pools[1].PoolID)
	}

	wethDai := resp.Pools[0]
	if len(wethDai.Tokens) != 2 {
		t.Fatalf("expected 2 tokens in pool 1, got %d", len(wethDai.Tokens))
	}
	if wethDai.TotalWeight != "10.000000000000000000" {
		t.Errorf("expected total weight 10, got %s", wethDai.TotalWeight)
	}
	if !wethDai.Finalized || !wethDai.PublicSwap {
		t.Error("expected seeded pools to be finalized with public swap on")
	}
}

// TestMockServiceGetPool tests single-pool lookup
func TestMockServiceGetPool(t *testing.T) {
	s := NewMockService()

	pool, err := s.GetPool(context.Background(), 2)
	if err != nil {
		t.Fatalf("failed to get pool: %v", err)
	}
	if pool.PoolID != 2 {
		t.Errorf("expected pool 2, got %d", pool.PoolID)
	}
	if _, err := s.GetPool(context.Background(), 99); err == nil {
		t.Error("expected error for unknown pool")
	}
}

// TestMockServiceSpotPrice tests the pair pricing path
func TestMockServiceSpotPrice(t *testing.T) {
	s := NewMockService()

	price, err := s.GetSpotPrice(context.Background(), 1, "weth", "dai")
	if err != nil {
		t.Fatalf("failed to get spot price: %v", err)
	}

	// Equal weights: 5000000/200000000 scaled by 1/(1-0.003)
	got := math.LegacyMustNewDecFromStr(price.Price)
	expected := math.LegacyMustNewDecFromStr("0.025").Quo(math.LegacyMustNewDecFromStr("0.997"))
	if !got.Equal(expected) {
		t.Errorf("expected spot price %s, got %s", expected.String(), got.String())
	}

	if _, err := s.GetSpotPrice(context.Background(), 1, "weth", "weth"); err == nil {
		t.Error("expected error for identical pair")
	}
	if _, err := s.GetSpotPrice(context.Background(), 1, "weth", "uatom"); err == nil {
		t.Error("expected error for unbound token")
	}
}

// TestMockServiceQuote tests the exact-in quote path
func TestMockServiceQuote(t *testing.T) {
	s := NewMockService()

	resp, err := s.Quote(context.Background(), &types.QuoteRequest{
		PoolID:   1,
		TokenIn:  "weth",
		AmountIn: "1000",
		TokenOut: "dai",
	})
	if err != nil {
		t.Fatalf("failed to quote: %v", err)
	}

	amountOut := math.LegacyMustNewDecFromStr(resp.AmountOut)
	if !amountOut.IsPositive() {
		t.Fatalf("expected positive amount out, got %s", resp.AmountOut)
	}
	// Equal weights around a 40:1 balance ratio, minus fee and slippage
	if amountOut.LT(math.LegacyNewDec(39000)) || amountOut.GT(math.LegacyNewDec(40000)) {
		t.Errorf("expected ~39872 dai out, got %s", resp.AmountOut)
	}

	// The quoted post-trade spot is above the current spot
	spotBefore, err := s.GetSpotPrice(context.Background(), 1, "weth", "dai")
	if err != nil {
		t.Fatalf("failed to get spot price: %v", err)
	}
	if math.LegacyMustNewDecFromStr(resp.SpotPrice).LT(math.LegacyMustNewDecFromStr(spotBefore.Price)) {
		t.Errorf("expected post-trade spot %s above %s", resp.SpotPrice, spotBefore.Price)
	}

	if _, err := s.Quote(context.Background(), &types.QuoteRequest{PoolID: 1, TokenIn: "weth", AmountIn: "-5", TokenOut: "dai"}); err == nil {
		t.Error("expected error for negative amount in")
	}
}

// TestMockServiceFeeds tests the feed and round queries
func TestMockServiceFeeds(t *testing.T) {
	s := NewMockService()

	feeds, err := s.ListFeeds(context.Background())
	if err != nil {
		t.Fatalf("failed to list feeds: %v", err)
	}
	if feeds.Total != 3 {
		t.Fatalf("expected 3 seeded feeds, got %d", feeds.Total)
	}

	feed, err := s.GetFeed(context.Background(), "eth-usd")
	if err != nil {
		t.Fatalf("failed to get feed: %v", err)
	}
	if feed.Decimals != 8 {
		t.Errorf("expected 8 decimals, got %d", feed.Decimals)
	}
	if feed.LatestRound == 0 {
		t.Error("expected seeded round history")
	}

	rounds, err := s.GetRounds(context.Background(), "eth-usd", 10)
	if err != nil {
		t.Fatalf("failed to get rounds: %v", err)
	}
	if len(rounds.Rounds) != 10 {
		t.Errorf("expected 10 rounds, got %d", len(rounds.Rounds))
	}
	// Newest last
	last := rounds.Rounds[len(rounds.Rounds)-1]
	if last.RoundID != feed.LatestRound {
		t.Errorf("expected last round %d, got %d", feed.LatestRound, last.RoundID)
	}

	if _, err := s.GetRounds(context.Background(), "no-such-feed", 10); err == nil {
		t.Error("expected error for unknown feed")
	}
}

// TestMockServiceStepPrices tests the random-walk driver
func TestMockServiceStepPrices(t *testing.T) {
	s := NewMockService()

	before, err := s.GetFeed(context.Background(), "eth-usd")
	if err != nil {
		t.Fatalf("failed to get feed: %v", err)
	}

	stepped := s.StepPrices()
	if len(stepped) != 3 {
		t.Fatalf("expected a round for every feed, got %d", len(stepped))
	}
	next, ok := stepped["eth-usd"]
	if !ok {
		t.Fatal("expected eth-usd round")
	}
	if next.RoundID != before.LatestRound+1 {
		t.Errorf("expected round id %d, got %d", before.LatestRound+1, next.RoundID)
	}

	after, err := s.GetFeed(context.Background(), "eth-usd")
	if err != nil {
		t.Fatalf("failed to get feed: %v", err)
	}
	if after.LatestRound != next.RoundID {
		t.Errorf("expected feed latest round %d, got %d", next.RoundID, after.LatestRound)
	}
}

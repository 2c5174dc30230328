package api

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/math"

	"github.com/dynaswap/dynaswap/api/types"
	"github.com/dynaswap/dynaswap/x/smartpool/pricing"
)

const mockRoundHistory = 64

// mockToken is the in-memory record behind a mock pool token
type mockToken struct {
	denom   string
	balance math.LegacyDec
	denorm  math.LegacyDec
	feedID  string
}

// mockPool is the in-memory record behind a mock pool
type mockPool struct {
	id          uint64
	tokens      []*mockToken
	swapFee     math.LegacyDec
	controller  string
	totalShares math.LegacyDec
	createdAt   int64
}

// mockFeed is the in-memory record behind a mock price feed
type mockFeed struct {
	id          string
	description string
	decimals    uint8
	owner       string
	rounds      []*types.Round
}

// MockService serves pool and feed queries from seeded in-memory data.
// Quotes run through the same weighted math the chain uses.
type MockService struct {
	mu    sync.RWMutex
	pools map[uint64]*mockPool
	feeds map[string]*mockFeed
	rng   *rand.Rand
}

// NewMockService creates a mock service seeded with two pools and their feeds
func NewMockService() *MockService {
	s := &MockService{
		pools: make(map[uint64]*mockPool),
		feeds: make(map[string]*mockFeed),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.seed()
	return s
}

// seed populates the initial pools and feeds
func (s *MockService) seed() {
	now := time.Now()

	s.addFeed("eth-usd", "ETH / USD", 8, "4250.00000000", now)
	s.addFeed("dai-usd", "DAI / USD", 8, "1.00000000", now)
	s.addFeed("atom-usd", "ATOM / USD", 6, "9.350000", now)

	s.pools[1] = &mockPool{
		id: 1,
		tokens: []*mockToken{
			{denom: "weth", balance: math.LegacyNewDec(5000000), denorm: math.LegacyNewDec(5), feedID: "eth-usd"},
			{denom: "dai", balance: math.LegacyNewDec(200000000), denorm: math.LegacyNewDec(5), feedID: "dai-usd"},
		},
		swapFee:     math.LegacyMustNewDecFromStr("0.003"),
		controller:  "cosmos1mockcontroller0000000000000000000000",
		totalShares: math.LegacyNewDec(100),
		createdAt:   now.UnixMilli(),
	}
	s.pools[2] = &mockPool{
		id: 2,
		tokens: []*mockToken{
			{denom: "uatom", balance: math.LegacyNewDec(800000000), denorm: math.LegacyNewDec(10), feedID: "atom-usd"},
			{denom: "dai", balance: math.LegacyNewDec(7480000000), denorm: math.LegacyNewDec(10), feedID: "dai-usd"},
		},
		swapFee:     math.LegacyMustNewDecFromStr("0.001"),
		controller:  "cosmos1mockcontroller0000000000000000000000",
		totalShares: math.LegacyNewDec(100),
		createdAt:   now.UnixMilli(),
	}
}

// addFeed seeds a feed with a short synthetic round history
func (s *MockService) addFeed(id, description string, decimals uint8, price string, now time.Time) {
	base := math.LegacyMustNewDecFromStr(price)
	feed := &mockFeed{
		id:          id,
		description: description,
		decimals:    decimals,
		owner:       "cosmos1mockoracle000000000000000000000000",
	}
	// Walk backwards so the latest round carries the seeded price
	for i := 0; i < mockRoundHistory; i++ {
		drift := math.LegacyNewDecWithPrec(int64(s.rng.Intn(2001)-1000), 5)
		p := base.Mul(math.LegacyOneDec().Add(drift))
		feed.rounds = append(feed.rounds, &types.Round{
			RoundID:   uint64(i + 1),
			Price:     p.TruncateInt().String(),
			Timestamp: now.Add(-time.Duration(mockRoundHistory-i) * time.Minute).Unix(),
		})
	}
	s.feeds[id] = feed
}

// ListPools returns all seeded pools
func (s *MockService) ListPools(_ context.Context) (*types.ListPoolsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint64, 0, len(s.pools))
	for id := range s.pools {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pools := make([]*types.Pool, 0, len(ids))
	for _, id := range ids {
		pools = append(pools, s.poolInfo(s.pools[id]))
	}
	return &types.ListPoolsResponse{Pools: pools, Total: len(pools)}, nil
}

// GetPool returns a single pool by id
func (s *MockService) GetPool(_ context.Context, poolID uint64) (*types.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", poolID)
	}
	return s.poolInfo(pool), nil
}

// GetSpotPrice returns the fee-inclusive spot price of a pair
func (s *MockService) GetSpotPrice(_ context.Context, poolID uint64, tokenIn, tokenOut string) (*types.SpotPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", poolID)
	}
	in, out, err := pool.pair(tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	price, err := pricing.SpotPrice(in.balance, in.denorm, out.balance, out.denorm, pool.swapFee)
	if err != nil {
		return nil, err
	}
	return &types.SpotPrice{
		PoolID:    poolID,
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		Price:     price.String(),
		Timestamp: nowMillis(),
	}, nil
}

// Quote prices an exact-in swap without mutating pool state
func (s *MockService) Quote(_ context.Context, req *types.QuoteRequest) (*types.QuoteResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[req.PoolID]
	if !ok {
		return nil, fmt.Errorf("pool %d not found", req.PoolID)
	}
	in, out, err := pool.pair(req.TokenIn, req.TokenOut)
	if err != nil {
		return nil, err
	}
	amountIn, err := math.LegacyNewDecFromStr(req.AmountIn)
	if err != nil || !amountIn.IsPositive() {
		return nil, fmt.Errorf("invalid amount_in %q", req.AmountIn)
	}

	amountOut, err := pricing.CalcOutGivenIn(in.balance, in.denorm, out.balance, out.denorm, amountIn, pool.swapFee)
	if err != nil {
		return nil, err
	}
	spot, err := pricing.SpotPrice(
		in.balance.Add(amountIn), in.denorm,
		out.balance.Sub(amountOut), out.denorm,
		pool.swapFee,
	)
	if err != nil {
		return nil, err
	}

	return &types.QuoteResponse{
		PoolID:    req.PoolID,
		TokenIn:   req.TokenIn,
		AmountIn:  req.AmountIn,
		TokenOut:  req.TokenOut,
		AmountOut: amountOut.TruncateDec().String(),
		SpotPrice: spot.String(),
		Timestamp: nowMillis(),
	}, nil
}

// ListFeeds returns all seeded feeds
func (s *MockService) ListFeeds(_ context.Context) (*types.ListFeedsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.feeds))
	for id := range s.feeds {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	feeds := make([]*types.Feed, 0, len(ids))
	for _, id := range ids {
		feeds = append(feeds, s.feedInfo(s.feeds[id]))
	}
	return &types.ListFeedsResponse{Feeds: feeds, Total: len(feeds)}, nil
}

// GetFeed returns a single feed by id
func (s *MockService) GetFeed(_ context.Context, feedID string) (*types.Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed, ok := s.feeds[feedID]
	if !ok {
		return nil, fmt.Errorf("feed %q not found", feedID)
	}
	return s.feedInfo(feed), nil
}

// GetRounds returns the most recent rounds of a feed, newest last
func (s *MockService) GetRounds(_ context.Context, feedID string, limit int) (*types.ListRoundsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed, ok := s.feeds[feedID]
	if !ok {
		return nil, fmt.Errorf("feed %q not found", feedID)
	}
	if limit <= 0 || limit > len(feed.rounds) {
		limit = len(feed.rounds)
	}
	rounds := make([]*types.Round, limit)
	copy(rounds, feed.rounds[len(feed.rounds)-limit:])
	return &types.ListRoundsResponse{FeedID: feedID, Rounds: rounds, Total: len(feed.rounds)}, nil
}

// StepPrices advances every feed one random-walk round and returns the new
// latest rounds keyed by feed id. The server uses this to drive websocket
// price channels in mock mode.
func (s *MockService) StepPrices() map[string]*types.Round {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*types.Round, len(s.feeds))
	for id, feed := range s.feeds {
		last := feed.rounds[len(feed.rounds)-1]
		price, err := math.LegacyNewDecFromStr(last.Price)
		if err != nil {
			continue
		}
		drift := math.LegacyNewDecWithPrec(int64(s.rng.Intn(401)-200), 5)
		next := &types.Round{
			RoundID:   last.RoundID + 1,
			Price:     price.Mul(math.LegacyOneDec().Add(drift)).TruncateInt().String(),
			Timestamp: time.Now().Unix(),
		}
		feed.rounds = append(feed.rounds, next)
		if len(feed.rounds) > mockRoundHistory {
			feed.rounds = feed.rounds[len(feed.rounds)-mockRoundHistory:]
		}
		out[id] = next
	}
	return out
}

// pair resolves an in/out token pair inside a pool
func (p *mockPool) pair(tokenIn, tokenOut string) (*mockToken, *mockToken, error) {
	if tokenIn == tokenOut {
		return nil, nil, fmt.Errorf("token_in and token_out must differ")
	}
	var in, out *mockToken
	for _, t := range p.tokens {
		switch t.denom {
		case tokenIn:
			in = t
		case tokenOut:
			out = t
		}
	}
	if in == nil {
		return nil, nil, fmt.Errorf("token %q not bound in pool %d", tokenIn, p.id)
	}
	if out == nil {
		return nil, nil, fmt.Errorf("token %q not bound in pool %d", tokenOut, p.id)
	}
	return in, out, nil
}

// poolInfo converts a mock pool to its API shape
func (s *MockService) poolInfo(pool *mockPool) *types.Pool {
	totalWeight := math.LegacyZeroDec()
	tokens := make([]types.PoolToken, 0, len(pool.tokens))
	for _, t := range pool.tokens {
		totalWeight = totalWeight.Add(t.denorm)
		tokens = append(tokens, types.PoolToken{
			Denom:   t.denom,
			Balance: t.balance.String(),
			Denorm:  t.denorm.String(),
			FeedID:  t.feedID,
		})
	}
	return &types.Pool{
		PoolID:      pool.id,
		Tokens:      tokens,
		TotalWeight: totalWeight.String(),
		SwapFee:     pool.swapFee.String(),
		Controller:  pool.controller,
		Finalized:   true,
		PublicSwap:  true,
		TotalShares: pool.totalShares.String(),
		CreatedAt:   pool.createdAt,
	}
}

// feedInfo converts a mock feed to its API shape
func (s *MockService) feedInfo(feed *mockFeed) *types.Feed {
	last := feed.rounds[len(feed.rounds)-1]
	return &types.Feed{
		FeedID:      feed.id,
		Description: feed.description,
		Decimals:    feed.decimals,
		Owner:       feed.owner,
		LatestRound: last.RoundID,
		LatestPrice: last.Price,
		UpdatedAt:   last.Timestamp,
	}
}

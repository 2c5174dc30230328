package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// Store key prefixes
var (
	FeedKeyPrefix  = []byte{0x01}
	RoundKeyPrefix = []byte{0x02}
)

// Keeper manages the pricefeed module state
type Keeper struct {
	cdc       codec.BinaryCodec
	storeKey  storetypes.StoreKey
	logger    log.Logger
	authority string
}

// NewKeeper creates a new pricefeed keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
		logger:    logger.With("module", "x/pricefeed"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func feedKey(feedId string) []byte {
	return append(FeedKeyPrefix, []byte(feedId)...)
}

func roundKey(feedId string, roundId uint64) []byte {
	key := append(RoundKeyPrefix, []byte(feedId)...)
	key = append(key, 0x00)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, roundId)
	return append(key, bz...)
}

// SetFeed saves a feed to the store
func (k *Keeper) SetFeed(ctx sdk.Context, feed *types.Feed) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(feed)
	store.Set(feedKey(feed.Id), bz)
}

// GetFeed retrieves a feed from the store
func (k *Keeper) GetFeed(ctx sdk.Context, feedId string) (types.Feed, bool) {
	store := k.GetStore(ctx)
	bz := store.Get(feedKey(feedId))
	if bz == nil {
		return types.Feed{}, false
	}
	var feed types.Feed
	if err := json.Unmarshal(bz, &feed); err != nil {
		return types.Feed{}, false
	}
	return feed, true
}

// GetAllFeeds returns all registered feeds
func (k *Keeper) GetAllFeeds(ctx sdk.Context) []types.Feed {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, FeedKeyPrefix)
	defer iterator.Close()

	var feeds []types.Feed
	for ; iterator.Valid(); iterator.Next() {
		var feed types.Feed
		if err := json.Unmarshal(iterator.Value(), &feed); err != nil {
			continue
		}
		feeds = append(feeds, feed)
	}
	return feeds
}

// setRound saves a round without monotonicity checks (genesis import)
func (k *Keeper) setRound(ctx sdk.Context, feedId string, round types.Round) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(round)
	store.Set(roundKey(feedId, round.RoundId), bz)
}

// GetRound retrieves a specific round of a feed
func (k *Keeper) GetRound(ctx sdk.Context, feedId string, roundId uint64) (types.Round, bool) {
	store := k.GetStore(ctx)
	bz := store.Get(roundKey(feedId, roundId))
	if bz == nil {
		return types.Round{}, false
	}
	var round types.Round
	if err := json.Unmarshal(bz, &round); err != nil {
		return types.Round{}, false
	}
	return round, true
}

// LatestRound retrieves the most recent round of a feed
func (k *Keeper) LatestRound(ctx sdk.Context, feedId string) (types.Round, bool) {
	feed, ok := k.GetFeed(ctx, feedId)
	if !ok || feed.LatestRound == 0 {
		return types.Round{}, false
	}
	return k.GetRound(ctx, feedId, feed.LatestRound)
}

// GetRounds returns all rounds of a feed in ascending round order
func (k *Keeper) GetRounds(ctx sdk.Context, feedId string) []types.Round {
	store := k.GetStore(ctx)
	prefix := append(RoundKeyPrefix, []byte(feedId)...)
	prefix = append(prefix, 0x00)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var rounds []types.Round
	for ; iterator.Valid(); iterator.Next() {
		var round types.Round
		if err := json.Unmarshal(iterator.Value(), &round); err != nil {
			continue
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// RegisterFeed registers a new price feed
func (k *Keeper) RegisterFeed(ctx sdk.Context, owner, feedId, description string, decimals uint8) error {
	if decimals > types.MaxDecimals {
		return types.ErrInvalidDecimals.Wrapf("decimals %d above max %d", decimals, types.MaxDecimals)
	}
	if _, ok := k.GetFeed(ctx, feedId); ok {
		return types.ErrFeedExists.Wrap(feedId)
	}

	feed := &types.Feed{
		Id:          feedId,
		Description: description,
		Decimals:    decimals,
		Owner:       owner,
		LatestRound: 0,
		CreatedAt:   ctx.BlockTime().Unix(),
	}
	k.SetFeed(ctx, feed)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegisterFeed,
			sdk.NewAttribute(types.AttributeKeyFeedId, feedId),
			sdk.NewAttribute(types.AttributeKeyOwner, owner),
		),
	)
	k.logger.Info("registered feed", "feed", feedId, "decimals", decimals)
	return nil
}

// SubmitRound appends a new round to a feed. Round ids are assigned
// sequentially and timestamps must not go backwards.
func (k *Keeper) SubmitRound(ctx sdk.Context, owner, feedId string, price math.LegacyDec, timestamp int64) (uint64, error) {
	feed, ok := k.GetFeed(ctx, feedId)
	if !ok {
		return 0, types.ErrFeedNotFound.Wrap(feedId)
	}
	if feed.Owner != owner {
		return 0, types.ErrNotFeedOwner.Wrapf("feed %s owned by %s", feedId, feed.Owner)
	}
	if feed.LatestRound > 0 {
		prev, ok := k.GetRound(ctx, feedId, feed.LatestRound)
		if ok && timestamp < prev.Timestamp {
			return 0, types.ErrNonIncreasingRound.Wrapf("timestamp %d before previous %d", timestamp, prev.Timestamp)
		}
	}

	roundId := feed.LatestRound + 1
	round := types.Round{
		RoundId:   roundId,
		Price:     price,
		Timestamp: timestamp,
	}
	k.setRound(ctx, feedId, round)
	feed.LatestRound = roundId
	k.SetFeed(ctx, &feed)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitRound,
			sdk.NewAttribute(types.AttributeKeyFeedId, feedId),
			sdk.NewAttribute(types.AttributeKeyRoundId, math.NewIntFromUint64(roundId).String()),
			sdk.NewAttribute(types.AttributeKeyPrice, price.String()),
		),
	)
	return roundId, nil
}

// Decimals returns the fixed-point scale of a feed's prices
func (k *Keeper) Decimals(ctx sdk.Context, feedId string) (uint8, error) {
	feed, ok := k.GetFeed(ctx, feedId)
	if !ok {
		return 0, types.ErrFeedNotFound.Wrap(feedId)
	}
	return feed.Decimals, nil
}

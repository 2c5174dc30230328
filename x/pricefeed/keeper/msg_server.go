package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/pricefeed/types"
)

// MsgServer defines the pricefeed MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// RegisterFeed handles MsgRegisterFeed
func (m *MsgServer) RegisterFeed(ctx context.Context, msg *types.MsgRegisterFeed) (*types.MsgRegisterFeedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.RegisterFeed(sdkCtx, msg.Owner, msg.FeedId, msg.Description, msg.Decimals); err != nil {
		return nil, err
	}
	return &types.MsgRegisterFeedResponse{}, nil
}

// SubmitRound handles MsgSubmitRound
func (m *MsgServer) SubmitRound(ctx context.Context, msg *types.MsgSubmitRound) (*types.MsgSubmitRoundResponse, error) {
	price, err := math.LegacyNewDecFromStr(msg.Price)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	timestamp := msg.Timestamp
	if timestamp == 0 {
		timestamp = sdkCtx.BlockTime().Unix()
	}

	roundId, err := m.keeper.SubmitRound(sdkCtx, msg.Owner, msg.FeedId, price, timestamp)
	if err != nil {
		return nil, err
	}
	return &types.MsgSubmitRoundResponse{RoundId: roundId}, nil
}

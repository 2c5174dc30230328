package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dynaswap/dynaswap/x/smartpool/types"
)

// MsgServer defines the smartpool MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseDec(s string) (math.LegacyDec, error) {
	d, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.LegacyDec{}, types.ErrInvalidInput.Wrapf("invalid decimal %q", s)
	}
	return d, nil
}

func parseDecMap(m map[string]string) (map[string]math.LegacyDec, error) {
	out := make(map[string]math.LegacyDec, len(m))
	for denom, s := range m {
		d, err := parseDec(s)
		if err != nil {
			return nil, err
		}
		out[denom] = d
	}
	return out, nil
}

func formatDecMap(m map[string]math.LegacyDec) map[string]string {
	out := make(map[string]string, len(m))
	for denom, d := range m {
		out[denom] = d.String()
	}
	return out
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, err := m.keeper.CreatePool(sdkCtx, msg.Creator)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreatePoolResponse{PoolId: pool.Id}, nil
}

// BindToken handles MsgBindToken
func (m *MsgServer) BindToken(ctx context.Context, msg *types.MsgBindToken) (*types.MsgBindTokenResponse, error) {
	balance, err := parseDec(msg.Balance)
	if err != nil {
		return nil, err
	}
	denorm, err := parseDec(msg.Denorm)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.BindToken(sdkCtx, msg.Controller, msg.PoolId, msg.Token, balance, denorm, msg.FeedId); err != nil {
		return nil, err
	}
	return &types.MsgBindTokenResponse{}, nil
}

// RebindToken handles MsgRebindToken
func (m *MsgServer) RebindToken(ctx context.Context, msg *types.MsgRebindToken) (*types.MsgRebindTokenResponse, error) {
	balance, err := parseDec(msg.Balance)
	if err != nil {
		return nil, err
	}
	denorm, err := parseDec(msg.Denorm)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.RebindToken(sdkCtx, msg.Controller, msg.PoolId, msg.Token, balance, denorm, msg.FeedId); err != nil {
		return nil, err
	}
	return &types.MsgRebindTokenResponse{}, nil
}

// UnbindToken handles MsgUnbindToken
func (m *MsgServer) UnbindToken(ctx context.Context, msg *types.MsgUnbindToken) (*types.MsgUnbindTokenResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.UnbindToken(sdkCtx, msg.Controller, msg.PoolId, msg.Token); err != nil {
		return nil, err
	}
	return &types.MsgUnbindTokenResponse{}, nil
}

// Gulp handles MsgGulp
func (m *MsgServer) Gulp(ctx context.Context, msg *types.MsgGulp) (*types.MsgGulpResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	balance, err := m.keeper.Gulp(sdkCtx, msg.PoolId, msg.Token)
	if err != nil {
		return nil, err
	}
	return &types.MsgGulpResponse{Balance: balance.String()}, nil
}

// Finalize handles MsgFinalize
func (m *MsgServer) Finalize(ctx context.Context, msg *types.MsgFinalize) (*types.MsgFinalizeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	minted, err := m.keeper.Finalize(sdkCtx, msg.Controller, msg.PoolId)
	if err != nil {
		return nil, err
	}
	return &types.MsgFinalizeResponse{SharesMinted: minted.String()}, nil
}

// JoinPool handles MsgJoinPool
func (m *MsgServer) JoinPool(ctx context.Context, msg *types.MsgJoinPool) (*types.MsgJoinPoolResponse, error) {
	sharesOut, err := parseDec(msg.SharesOut)
	if err != nil {
		return nil, err
	}
	maxAmountsIn, err := parseDecMap(msg.MaxAmountsIn)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amountsIn, err := m.keeper.JoinPool(sdkCtx, msg.Sender, msg.PoolId, sharesOut.TruncateInt(), maxAmountsIn)
	if err != nil {
		return nil, err
	}
	return &types.MsgJoinPoolResponse{AmountsIn: formatDecMap(amountsIn)}, nil
}

// ExitPool handles MsgExitPool
func (m *MsgServer) ExitPool(ctx context.Context, msg *types.MsgExitPool) (*types.MsgExitPoolResponse, error) {
	sharesIn, err := parseDec(msg.SharesIn)
	if err != nil {
		return nil, err
	}
	minAmountsOut, err := parseDecMap(msg.MinAmountsOut)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amountsOut, err := m.keeper.ExitPool(sdkCtx, msg.Sender, msg.PoolId, sharesIn.TruncateInt(), minAmountsOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgExitPoolResponse{AmountsOut: formatDecMap(amountsOut)}, nil
}

// SwapExactAmountIn handles MsgSwapExactAmountIn
func (m *MsgServer) SwapExactAmountIn(ctx context.Context, msg *types.MsgSwapExactAmountIn) (*types.MsgSwapExactAmountInResponse, error) {
	amountIn, err := parseDec(msg.AmountIn)
	if err != nil {
		return nil, err
	}
	minAmountOut := math.LegacyZeroDec()
	if msg.MinAmountOut != "" {
		if minAmountOut, err = parseDec(msg.MinAmountOut); err != nil {
			return nil, err
		}
	}
	maxPrice, err := parseDec(msg.MaxPrice)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amountOut, spotAfter, err := m.keeper.SwapExactAmountIn(sdkCtx, msg.Trader, msg.PoolId, msg.TokenIn, amountIn, msg.TokenOut, minAmountOut, maxPrice)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapExactAmountInResponse{
		AmountOut:      amountOut.String(),
		SpotPriceAfter: spotAfter.String(),
	}, nil
}

// SwapExactAmountOut handles MsgSwapExactAmountOut
func (m *MsgServer) SwapExactAmountOut(ctx context.Context, msg *types.MsgSwapExactAmountOut) (*types.MsgSwapExactAmountOutResponse, error) {
	amountOut, err := parseDec(msg.AmountOut)
	if err != nil {
		return nil, err
	}
	maxAmountIn, err := parseDec(msg.MaxAmountIn)
	if err != nil {
		return nil, err
	}
	maxPrice, err := parseDec(msg.MaxPrice)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amountIn, spotAfter, err := m.keeper.SwapExactAmountOut(sdkCtx, msg.Trader, msg.PoolId, msg.TokenIn, maxAmountIn, msg.TokenOut, amountOut, maxPrice)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapExactAmountOutResponse{
		AmountIn:       amountIn.String(),
		SpotPriceAfter: spotAfter.String(),
	}, nil
}

// SetSwapFee handles MsgSetSwapFee
func (m *MsgServer) SetSwapFee(ctx context.Context, msg *types.MsgSetSwapFee) (*types.MsgSetSwapFeeResponse, error) {
	swapFee, err := parseDec(msg.SwapFee)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetSwapFee(sdkCtx, msg.Controller, msg.PoolId, swapFee); err != nil {
		return nil, err
	}
	return &types.MsgSetSwapFeeResponse{}, nil
}

// SetPublicSwap handles MsgSetPublicSwap
func (m *MsgServer) SetPublicSwap(ctx context.Context, msg *types.MsgSetPublicSwap) (*types.MsgSetPublicSwapResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetPublicSwap(sdkCtx, msg.Controller, msg.PoolId, msg.Public); err != nil {
		return nil, err
	}
	return &types.MsgSetPublicSwapResponse{}, nil
}

// SetController handles MsgSetController
func (m *MsgServer) SetController(ctx context.Context, msg *types.MsgSetController) (*types.MsgSetControllerResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetController(sdkCtx, msg.Controller, msg.PoolId, msg.NewController); err != nil {
		return nil, err
	}
	return &types.MsgSetControllerResponse{}, nil
}

// SetCoverageParams handles MsgSetCoverageParams
func (m *MsgServer) SetCoverageParams(ctx context.Context, msg *types.MsgSetCoverageParams) (*types.MsgSetCoverageParamsResponse, error) {
	z, err := parseDec(msg.Z)
	if err != nil {
		return nil, err
	}
	horizon, err := parseDec(msg.Horizon)
	if err != nil {
		return nil, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetCoverageParams(sdkCtx, msg.Controller, msg.PoolId, z, horizon); err != nil {
		return nil, err
	}
	return &types.MsgSetCoverageParamsResponse{}, nil
}

// SetLookback handles MsgSetLookback
func (m *MsgServer) SetLookback(ctx context.Context, msg *types.MsgSetLookback) (*types.MsgSetLookbackResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetLookback(sdkCtx, msg.Controller, msg.PoolId, msg.Rounds, msg.Seconds); err != nil {
		return nil, err
	}
	return &types.MsgSetLookbackResponse{}, nil
}

// UpdateParams handles MsgUpdateParams
func (m *MsgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if msg.Authority != m.keeper.GetAuthority() {
		return nil, types.ErrNotController.Wrapf("expected authority %s", m.keeper.GetAuthority())
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetParams(sdkCtx, msg.Params); err != nil {
		return nil, err
	}
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeUpdateParams))
	return &types.MsgUpdateParamsResponse{}, nil
}

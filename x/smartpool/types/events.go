package types

// Event types
const (
	EventTypeCreatePool   = "create_pool"
	EventTypeBindToken    = "bind_token"
	EventTypeRebindToken  = "rebind_token"
	EventTypeUnbindToken  = "unbind_token"
	EventTypeGulp         = "gulp"
	EventTypeFinalize     = "finalize_pool"
	EventTypeJoinPool     = "join_pool"
	EventTypeExitPool     = "exit_pool"
	EventTypeSwap         = "swap"
	EventTypeSetSwapFee   = "set_swap_fee"
	EventTypeSetPublic    = "set_public_swap"
	EventTypeSetControl   = "set_controller"
	EventTypeSetCoverage  = "set_coverage_params"
	EventTypeSetLookback  = "set_lookback"
	EventTypeUpdateParams = "update_params"
)

// Event attribute keys
const (
	AttributeKeyPoolId     = "pool_id"
	AttributeKeyController = "controller"
	AttributeKeyToken      = "token"
	AttributeKeyTokenIn    = "token_in"
	AttributeKeyTokenOut   = "token_out"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyDenorm     = "denorm"
	AttributeKeyBalance    = "balance"
	AttributeKeyShares     = "shares"
	AttributeKeyTrader     = "trader"
	AttributeKeySpread     = "spread"
	AttributeKeySpotPrice  = "spot_price"
	AttributeKeySwapFee    = "swap_fee"
	AttributeKeyExitFee    = "exit_fee"
)

package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool        = "create_pool"
	TypeMsgBindToken         = "bind_token"
	TypeMsgRebindToken       = "rebind_token"
	TypeMsgUnbindToken       = "unbind_token"
	TypeMsgGulp              = "gulp"
	TypeMsgFinalize          = "finalize_pool"
	TypeMsgJoinPool          = "join_pool"
	TypeMsgExitPool          = "exit_pool"
	TypeMsgSwapExactIn       = "swap_exact_amount_in"
	TypeMsgSwapExactOut      = "swap_exact_amount_out"
	TypeMsgSetSwapFee        = "set_swap_fee"
	TypeMsgSetPublicSwap     = "set_public_swap"
	TypeMsgSetController     = "set_controller"
	TypeMsgSetCoverageParams = "set_coverage_params"
	TypeMsgSetLookback       = "set_lookback"
	TypeMsgUpdateParams      = "update_params"
)

// validPositiveDec checks a string amount parses to a positive decimal
func validPositiveDec(s string) error {
	d, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return ErrInvalidInput.Wrapf("invalid decimal %q", s)
	}
	if !d.IsPositive() {
		return ErrInvalidInput.Wrapf("amount %q must be positive", s)
	}
	return nil
}

// MsgCreatePool defines the CreatePool message
type MsgCreatePool struct {
	Creator string `json:"creator"`
}

// Route implements sdk.Msg
func (msg MsgCreatePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// ValidateBasic implements sdk.Msg
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreatePool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreatePool) Reset() { *msg = MsgCreatePool{} }

// String implements proto.Message
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Creator: %s}", msg.Creator)
}

// MsgCreatePoolResponse defines the CreatePool response
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgBindToken defines the BindToken message
type MsgBindToken struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Token      string `json:"token"`
	Balance    string `json:"balance"`
	Denorm     string `json:"denorm"`
	FeedId     string `json:"feed_id"`
}

// Route implements sdk.Msg
func (msg MsgBindToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgBindToken) Type() string { return TypeMsgBindToken }

// ValidateBasic implements sdk.Msg
func (msg MsgBindToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.Token); err != nil {
		return ErrInvalidInput.Wrapf("invalid token denom %q", msg.Token)
	}
	if msg.FeedId == "" {
		return ErrInvalidInput.Wrap("feed id cannot be empty")
	}
	if err := validPositiveDec(msg.Balance); err != nil {
		return err
	}
	return validPositiveDec(msg.Denorm)
}

// GetSigners implements sdk.Msg
func (msg MsgBindToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgBindToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgBindToken) Reset() { *msg = MsgBindToken{} }

// String implements proto.Message
func (msg MsgBindToken) String() string {
	return fmt.Sprintf("MsgBindToken{PoolId: %d, Token: %s, Balance: %s, Denorm: %s}", msg.PoolId, msg.Token, msg.Balance, msg.Denorm)
}

// MsgBindTokenResponse defines the BindToken response
type MsgBindTokenResponse struct{}

// MsgRebindToken defines the RebindToken message
type MsgRebindToken struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Token      string `json:"token"`
	Balance    string `json:"balance"`
	Denorm     string `json:"denorm"`
	FeedId     string `json:"feed_id"`
}

// Route implements sdk.Msg
func (msg MsgRebindToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRebindToken) Type() string { return TypeMsgRebindToken }

// ValidateBasic implements sdk.Msg
func (msg MsgRebindToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.Token); err != nil {
		return ErrInvalidInput.Wrapf("invalid token denom %q", msg.Token)
	}
	if msg.FeedId == "" {
		return ErrInvalidInput.Wrap("feed id cannot be empty")
	}
	if err := validPositiveDec(msg.Balance); err != nil {
		return err
	}
	return validPositiveDec(msg.Denorm)
}

// GetSigners implements sdk.Msg
func (msg MsgRebindToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRebindToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRebindToken) Reset() { *msg = MsgRebindToken{} }

// String implements proto.Message
func (msg MsgRebindToken) String() string {
	return fmt.Sprintf("MsgRebindToken{PoolId: %d, Token: %s, Balance: %s, Denorm: %s}", msg.PoolId, msg.Token, msg.Balance, msg.Denorm)
}

// MsgRebindTokenResponse defines the RebindToken response
type MsgRebindTokenResponse struct{}

// MsgUnbindToken defines the UnbindToken message
type MsgUnbindToken struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Token      string `json:"token"`
}

// Route implements sdk.Msg
func (msg MsgUnbindToken) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUnbindToken) Type() string { return TypeMsgUnbindToken }

// ValidateBasic implements sdk.Msg
func (msg MsgUnbindToken) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.Token); err != nil {
		return ErrInvalidInput.Wrapf("invalid token denom %q", msg.Token)
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUnbindToken) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUnbindToken) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUnbindToken) Reset() { *msg = MsgUnbindToken{} }

// String implements proto.Message
func (msg MsgUnbindToken) String() string {
	return fmt.Sprintf("MsgUnbindToken{PoolId: %d, Token: %s}", msg.PoolId, msg.Token)
}

// MsgUnbindTokenResponse defines the UnbindToken response
type MsgUnbindTokenResponse struct{}

// MsgGulp defines the Gulp message
type MsgGulp struct {
	Caller string `json:"caller"`
	PoolId uint64 `json:"pool_id"`
	Token  string `json:"token"`
}

// Route implements sdk.Msg
func (msg MsgGulp) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgGulp) Type() string { return TypeMsgGulp }

// ValidateBasic implements sdk.Msg
func (msg MsgGulp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(msg.Token); err != nil {
		return ErrInvalidInput.Wrapf("invalid token denom %q", msg.Token)
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgGulp) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgGulp) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgGulp) Reset() { *msg = MsgGulp{} }

// String implements proto.Message
func (msg MsgGulp) String() string {
	return fmt.Sprintf("MsgGulp{PoolId: %d, Token: %s}", msg.PoolId, msg.Token)
}

// MsgGulpResponse defines the Gulp response
type MsgGulpResponse struct {
	Balance string `json:"balance"`
}

// MsgFinalize defines the Finalize message
type MsgFinalize struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgFinalize) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalize) Type() string { return TypeMsgFinalize }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalize) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalize) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalize) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalize) Reset() { *msg = MsgFinalize{} }

// String implements proto.Message
func (msg MsgFinalize) String() string {
	return fmt.Sprintf("MsgFinalize{PoolId: %d}", msg.PoolId)
}

// MsgFinalizeResponse defines the Finalize response
type MsgFinalizeResponse struct {
	SharesMinted string `json:"shares_minted"`
}

// MsgJoinPool defines the JoinPool message. MaxAmountsIn caps the amount
// pulled per token denom.
type MsgJoinPool struct {
	Sender       string            `json:"sender"`
	PoolId       uint64            `json:"pool_id"`
	SharesOut    string            `json:"shares_out"`
	MaxAmountsIn map[string]string `json:"max_amounts_in"`
}

// Route implements sdk.Msg
func (msg MsgJoinPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgJoinPool) Type() string { return TypeMsgJoinPool }

// ValidateBasic implements sdk.Msg
func (msg MsgJoinPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	return validPositiveDec(msg.SharesOut)
}

// GetSigners implements sdk.Msg
func (msg MsgJoinPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgJoinPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgJoinPool) Reset() { *msg = MsgJoinPool{} }

// String implements proto.Message
func (msg MsgJoinPool) String() string {
	return fmt.Sprintf("MsgJoinPool{Sender: %s, PoolId: %d, SharesOut: %s}", msg.Sender, msg.PoolId, msg.SharesOut)
}

// MsgJoinPoolResponse defines the JoinPool response
type MsgJoinPoolResponse struct {
	AmountsIn map[string]string `json:"amounts_in"`
}

// MsgExitPool defines the ExitPool message. MinAmountsOut floors the amount
// pushed per token denom.
type MsgExitPool struct {
	Sender        string            `json:"sender"`
	PoolId        uint64            `json:"pool_id"`
	SharesIn      string            `json:"shares_in"`
	MinAmountsOut map[string]string `json:"min_amounts_out"`
}

// Route implements sdk.Msg
func (msg MsgExitPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExitPool) Type() string { return TypeMsgExitPool }

// ValidateBasic implements sdk.Msg
func (msg MsgExitPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return err
	}
	return validPositiveDec(msg.SharesIn)
}

// GetSigners implements sdk.Msg
func (msg MsgExitPool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExitPool) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExitPool) Reset() { *msg = MsgExitPool{} }

// String implements proto.Message
func (msg MsgExitPool) String() string {
	return fmt.Sprintf("MsgExitPool{Sender: %s, PoolId: %d, SharesIn: %s}", msg.Sender, msg.PoolId, msg.SharesIn)
}

// MsgExitPoolResponse defines the ExitPool response
type MsgExitPoolResponse struct {
	AmountsOut map[string]string `json:"amounts_out"`
}

// MsgSwapExactAmountIn defines the SwapExactAmountIn message
type MsgSwapExactAmountIn struct {
	Trader       string `json:"trader"`
	PoolId       uint64 `json:"pool_id"`
	TokenIn      string `json:"token_in"`
	AmountIn     string `json:"amount_in"`
	TokenOut     string `json:"token_out"`
	MinAmountOut string `json:"min_amount_out"`
	MaxPrice     string `json:"max_price"`
}

// Route implements sdk.Msg
func (msg MsgSwapExactAmountIn) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapExactAmountIn) Type() string { return TypeMsgSwapExactIn }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapExactAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return err
	}
	if msg.TokenIn == msg.TokenOut {
		return ErrInvalidInput.Wrap("token in and token out must differ")
	}
	if err := validPositiveDec(msg.AmountIn); err != nil {
		return err
	}
	return validPositiveDec(msg.MaxPrice)
}

// GetSigners implements sdk.Msg
func (msg MsgSwapExactAmountIn) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Trader)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapExactAmountIn) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapExactAmountIn) Reset() { *msg = MsgSwapExactAmountIn{} }

// String implements proto.Message
func (msg MsgSwapExactAmountIn) String() string {
	return fmt.Sprintf("MsgSwapExactAmountIn{PoolId: %d, %s %s -> %s}", msg.PoolId, msg.AmountIn, msg.TokenIn, msg.TokenOut)
}

// MsgSwapExactAmountInResponse defines the SwapExactAmountIn response
type MsgSwapExactAmountInResponse struct {
	AmountOut      string `json:"amount_out"`
	SpotPriceAfter string `json:"spot_price_after"`
}

// MsgSwapExactAmountOut defines the SwapExactAmountOut message
type MsgSwapExactAmountOut struct {
	Trader      string `json:"trader"`
	PoolId      uint64 `json:"pool_id"`
	TokenIn     string `json:"token_in"`
	MaxAmountIn string `json:"max_amount_in"`
	TokenOut    string `json:"token_out"`
	AmountOut   string `json:"amount_out"`
	MaxPrice    string `json:"max_price"`
}

// Route implements sdk.Msg
func (msg MsgSwapExactAmountOut) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSwapExactAmountOut) Type() string { return TypeMsgSwapExactOut }

// ValidateBasic implements sdk.Msg
func (msg MsgSwapExactAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return err
	}
	if msg.TokenIn == msg.TokenOut {
		return ErrInvalidInput.Wrap("token in and token out must differ")
	}
	if err := validPositiveDec(msg.AmountOut); err != nil {
		return err
	}
	return validPositiveDec(msg.MaxPrice)
}

// GetSigners implements sdk.Msg
func (msg MsgSwapExactAmountOut) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Trader)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSwapExactAmountOut) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSwapExactAmountOut) Reset() { *msg = MsgSwapExactAmountOut{} }

// String implements proto.Message
func (msg MsgSwapExactAmountOut) String() string {
	return fmt.Sprintf("MsgSwapExactAmountOut{PoolId: %d, %s -> %s %s}", msg.PoolId, msg.TokenIn, msg.AmountOut, msg.TokenOut)
}

// MsgSwapExactAmountOutResponse defines the SwapExactAmountOut response
type MsgSwapExactAmountOutResponse struct {
	AmountIn       string `json:"amount_in"`
	SpotPriceAfter string `json:"spot_price_after"`
}

// MsgSetSwapFee defines the SetSwapFee message
type MsgSetSwapFee struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	SwapFee    string `json:"swap_fee"`
}

// Route implements sdk.Msg
func (msg MsgSetSwapFee) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetSwapFee) Type() string { return TypeMsgSetSwapFee }

// ValidateBasic implements sdk.Msg
func (msg MsgSetSwapFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	return validPositiveDec(msg.SwapFee)
}

// GetSigners implements sdk.Msg
func (msg MsgSetSwapFee) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetSwapFee) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetSwapFee) Reset() { *msg = MsgSetSwapFee{} }

// String implements proto.Message
func (msg MsgSetSwapFee) String() string {
	return fmt.Sprintf("MsgSetSwapFee{PoolId: %d, SwapFee: %s}", msg.PoolId, msg.SwapFee)
}

// MsgSetSwapFeeResponse defines the SetSwapFee response
type MsgSetSwapFeeResponse struct{}

// MsgSetPublicSwap defines the SetPublicSwap message
type MsgSetPublicSwap struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Public     bool   `json:"public"`
}

// Route implements sdk.Msg
func (msg MsgSetPublicSwap) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPublicSwap) Type() string { return TypeMsgSetPublicSwap }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPublicSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetPublicSwap) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetPublicSwap) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetPublicSwap) Reset() { *msg = MsgSetPublicSwap{} }

// String implements proto.Message
func (msg MsgSetPublicSwap) String() string {
	return fmt.Sprintf("MsgSetPublicSwap{PoolId: %d, Public: %t}", msg.PoolId, msg.Public)
}

// MsgSetPublicSwapResponse defines the SetPublicSwap response
type MsgSetPublicSwapResponse struct{}

// MsgSetController defines the SetController message
type MsgSetController struct {
	Controller    string `json:"controller"`
	PoolId        uint64 `json:"pool_id"`
	NewController string `json:"new_controller"`
}

// Route implements sdk.Msg
func (msg MsgSetController) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetController) Type() string { return TypeMsgSetController }

// ValidateBasic implements sdk.Msg
func (msg MsgSetController) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewController); err != nil {
		return err
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetController) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetController) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetController) Reset() { *msg = MsgSetController{} }

// String implements proto.Message
func (msg MsgSetController) String() string {
	return fmt.Sprintf("MsgSetController{PoolId: %d, NewController: %s}", msg.PoolId, msg.NewController)
}

// MsgSetControllerResponse defines the SetController response
type MsgSetControllerResponse struct{}

// MsgSetCoverageParams defines the SetCoverageParams message
type MsgSetCoverageParams struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Z          string `json:"z"`
	Horizon    string `json:"horizon"`
}

// Route implements sdk.Msg
func (msg MsgSetCoverageParams) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetCoverageParams) Type() string { return TypeMsgSetCoverageParams }

// ValidateBasic implements sdk.Msg
func (msg MsgSetCoverageParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if err := validPositiveDec(msg.Z); err != nil {
		return err
	}
	return validPositiveDec(msg.Horizon)
}

// GetSigners implements sdk.Msg
func (msg MsgSetCoverageParams) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetCoverageParams) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetCoverageParams) Reset() { *msg = MsgSetCoverageParams{} }

// String implements proto.Message
func (msg MsgSetCoverageParams) String() string {
	return fmt.Sprintf("MsgSetCoverageParams{PoolId: %d, Z: %s, Horizon: %s}", msg.PoolId, msg.Z, msg.Horizon)
}

// MsgSetCoverageParamsResponse defines the SetCoverageParams response
type MsgSetCoverageParamsResponse struct{}

// MsgSetLookback defines the SetLookback message
type MsgSetLookback struct {
	Controller string `json:"controller"`
	PoolId     uint64 `json:"pool_id"`
	Rounds     uint64 `json:"rounds"`
	Seconds    uint64 `json:"seconds"`
}

// Route implements sdk.Msg
func (msg MsgSetLookback) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetLookback) Type() string { return TypeMsgSetLookback }

// ValidateBasic implements sdk.Msg
func (msg MsgSetLookback) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return err
	}
	if msg.Rounds == 0 {
		return ErrInvalidInput.Wrap("lookback rounds must be positive")
	}
	if msg.Seconds == 0 {
		return ErrInvalidInput.Wrap("lookback seconds must be positive")
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetLookback) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Controller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetLookback) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetLookback) Reset() { *msg = MsgSetLookback{} }

// String implements proto.Message
func (msg MsgSetLookback) String() string {
	return fmt.Sprintf("MsgSetLookback{PoolId: %d, Rounds: %d, Seconds: %d}", msg.PoolId, msg.Rounds, msg.Seconds)
}

// MsgSetLookbackResponse defines the SetLookback response
type MsgSetLookbackResponse struct{}

// MsgUpdateParams defines the UpdateParams message (governance authority)
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// Route implements sdk.Msg
func (msg MsgUpdateParams) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateParams) Type() string { return TypeMsgUpdateParams }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return msg.Params.Validate()
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateParams) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateParams) Reset() { *msg = MsgUpdateParams{} }

// String implements proto.Message
func (msg MsgUpdateParams) String() string {
	return fmt.Sprintf("MsgUpdateParams{Authority: %s}", msg.Authority)
}

// MsgUpdateParamsResponse defines the UpdateParams response
type MsgUpdateParamsResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreatePool{}
	_ sdk.Msg = &MsgBindToken{}
	_ sdk.Msg = &MsgRebindToken{}
	_ sdk.Msg = &MsgUnbindToken{}
	_ sdk.Msg = &MsgGulp{}
	_ sdk.Msg = &MsgFinalize{}
	_ sdk.Msg = &MsgJoinPool{}
	_ sdk.Msg = &MsgExitPool{}
	_ sdk.Msg = &MsgSwapExactAmountIn{}
	_ sdk.Msg = &MsgSwapExactAmountOut{}
	_ sdk.Msg = &MsgSetSwapFee{}
	_ sdk.Msg = &MsgSetPublicSwap{}
	_ sdk.Msg = &MsgSetController{}
	_ sdk.Msg = &MsgSetCoverageParams{}
	_ sdk.Msg = &MsgSetLookback{}
	_ sdk.Msg = &MsgUpdateParams{}
)

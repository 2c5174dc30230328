package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgRegisterFeed = "register_feed"
	TypeMsgSubmitRound  = "submit_round"
)

// MsgRegisterFeed defines the RegisterFeed message
type MsgRegisterFeed struct {
	Owner       string `json:"owner"`
	FeedId      string `json:"feed_id"`
	Description string `json:"description"`
	Decimals    uint8  `json:"decimals"`
}

// Route implements sdk.Msg
func (msg MsgRegisterFeed) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRegisterFeed) Type() string { return TypeMsgRegisterFeed }

// ValidateBasic implements sdk.Msg
func (msg MsgRegisterFeed) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.FeedId == "" {
		return ErrInvalidInput.Wrap("feed id cannot be empty")
	}
	if msg.Decimals > MaxDecimals {
		return ErrInvalidDecimals.Wrapf("decimals %d above max %d", msg.Decimals, MaxDecimals)
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRegisterFeed) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRegisterFeed) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRegisterFeed) Reset() { *msg = MsgRegisterFeed{} }

// String implements proto.Message
func (msg MsgRegisterFeed) String() string {
	return fmt.Sprintf("MsgRegisterFeed{FeedId: %s, Decimals: %d}", msg.FeedId, msg.Decimals)
}

// MsgRegisterFeedResponse defines the RegisterFeed response
type MsgRegisterFeedResponse struct{}

// MsgSubmitRound defines the SubmitRound message
type MsgSubmitRound struct {
	Owner     string `json:"owner"`
	FeedId    string `json:"feed_id"`
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// Route implements sdk.Msg
func (msg MsgSubmitRound) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSubmitRound) Type() string { return TypeMsgSubmitRound }

// ValidateBasic implements sdk.Msg
func (msg MsgSubmitRound) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.FeedId == "" {
		return ErrInvalidInput.Wrap("feed id cannot be empty")
	}
	if _, err := math.LegacyNewDecFromStr(msg.Price); err != nil {
		return ErrInvalidInput.Wrapf("invalid price %q", msg.Price)
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSubmitRound) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSubmitRound) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSubmitRound) Reset() { *msg = MsgSubmitRound{} }

// String implements proto.Message
func (msg MsgSubmitRound) String() string {
	return fmt.Sprintf("MsgSubmitRound{FeedId: %s, Price: %s}", msg.FeedId, msg.Price)
}

// MsgSubmitRoundResponse defines the SubmitRound response
type MsgSubmitRoundResponse struct {
	RoundId uint64 `json:"round_id"`
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgRegisterFeed{}
	_ sdk.Msg = &MsgSubmitRound{}
)

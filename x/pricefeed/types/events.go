package types

// Event types
const (
	EventTypeRegisterFeed = "register_feed"
	EventTypeSubmitRound  = "submit_round"
)

// Event attribute keys
const (
	AttributeKeyFeedId    = "feed_id"
	AttributeKeyOwner     = "owner"
	AttributeKeyRoundId   = "round_id"
	AttributeKeyPrice     = "price"
	AttributeKeyTimestamp = "timestamp"
)

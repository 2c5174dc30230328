package types

import (
	"fmt"
)

// FeedRounds pairs a feed with its stored rounds for genesis export
type FeedRounds struct {
	FeedId string  `json:"feed_id"`
	Rounds []Round `json:"rounds"`
}

// GenesisState is the pricefeed module genesis state
type GenesisState struct {
	Feeds  []Feed       `json:"feeds"`
	Rounds []FeedRounds `json:"rounds"`
}

// DefaultGenesisState returns the default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	feeds := map[string]bool{}
	for _, feed := range gs.Feeds {
		if feed.Id == "" {
			return fmt.Errorf("feed with empty id")
		}
		if feeds[feed.Id] {
			return fmt.Errorf("duplicate feed %s", feed.Id)
		}
		if feed.Decimals > MaxDecimals {
			return fmt.Errorf("feed %s: decimals %d above max", feed.Id, feed.Decimals)
		}
		feeds[feed.Id] = true
	}
	for _, fr := range gs.Rounds {
		if !feeds[fr.FeedId] {
			return fmt.Errorf("rounds for unknown feed %s", fr.FeedId)
		}
		var prev Round
		for i, r := range fr.Rounds {
			if r.RoundId == 0 {
				return fmt.Errorf("feed %s: round id 0 is reserved", fr.FeedId)
			}
			if i > 0 && (r.RoundId <= prev.RoundId || r.Timestamp < prev.Timestamp) {
				return fmt.Errorf("feed %s: rounds not increasing at %d", fr.FeedId, r.RoundId)
			}
			prev = r
		}
	}
	return nil
}

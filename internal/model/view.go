package model

import "github.com/shopspring/decimal"

// ItemView is an Item decorated with the fields a display needs.
type ItemView struct {
	Item
	Closed            bool   `json:"closed"`
	IsHighest         bool   `json:"is_highest"`
	HighestBidDisplay string `json:"highest_bid_display"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank              int             `json:"rank"`
	ItemID            int             `json:"item_id"`
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	HighestBid        decimal.Decimal `json:"highest_bid"`
	HighestBidDisplay string          `json:"highest_bid_display"`
}

// Snapshot is the full derived state pushed to live clients after each mutation.
type Snapshot struct {
	Tick        uint64             `json:"tick"`
	Items       []ItemView         `json:"items"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

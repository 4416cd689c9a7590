package service

import (
	"slices"

	"auction-live-api/internal/model"

	"github.com/shopspring/decimal"
)

// Leaderboard ranks items by highest bid, descending. Items with equal bids
// keep their input order.
func Leaderboard(items []model.Item) []model.LeaderboardEntry {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b model.Item) int {
		return b.HighestBid.Cmp(a.HighestBid)
	})

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, item := range sorted {
		entries[i] = model.LeaderboardEntry{
			Rank:              i + 1,
			ItemID:            item.ID,
			Name:              item.Name,
			Currency:          item.Currency,
			HighestBid:        item.HighestBid,
			HighestBidDisplay: FormatAmount(item.HighestBid),
		}
	}
	return entries
}

// TopBid returns the largest highest bid across items, or false when there
// are none.
func TopBid(items []model.Item) (decimal.Decimal, bool) {
	if len(items) == 0 {
		return decimal.Zero, false
	}
	top := items[0].HighestBid
	for _, item := range items[1:] {
		if item.HighestBid.GreaterThan(top) {
			top = item.HighestBid
		}
	}
	return top, true
}

// Views decorates items for display. Every item whose bid equals the top bid
// is flagged, so ties are all highlighted.
func Views(items []model.Item) []model.ItemView {
	top, ok := TopBid(items)
	views := make([]model.ItemView, len(items))
	for i, item := range items {
		views[i] = model.ItemView{
			Item:              item,
			Closed:            item.Closed(),
			IsHighest:         ok && item.HighestBid.Equal(top),
			HighestBidDisplay: FormatAmount(item.HighestBid),
		}
	}
	return views
}

package service

import (
	"auction-live-api/internal/config"
	"auction-live-api/internal/model"

	"github.com/shopspring/decimal"
)

// Rules are the simulation parameters shared by the tick step and bidding.
type Rules struct {
	RandomBidProbability float64
	RandomBidMin         int64
	RandomBidSpan        int64
	RandomBidder         string
	BidStep              int64
	HistoryLimit         int
	DefaultBidder        string
	AcceptAfterClose     bool
}

// DefaultRules matches the defaults in config.AuctionConfig.
func DefaultRules() Rules {
	return Rules{
		RandomBidProbability: 0.2,
		RandomBidMin:         50000,
		RandomBidSpan:        100000,
		RandomBidder:         "Random Bidder",
		BidStep:              50000,
		HistoryLimit:         5,
		DefaultBidder:        "You",
	}
}

// RulesFromConfig copies the auction settings out of cfg.
func RulesFromConfig(cfg config.AuctionConfig) Rules {
	return Rules{
		RandomBidProbability: cfg.RandomBidProbability,
		RandomBidMin:         cfg.RandomBidMin,
		RandomBidSpan:        cfg.RandomBidSpan,
		RandomBidder:         cfg.RandomBidder,
		BidStep:              cfg.BidStep,
		HistoryLimit:         cfg.HistoryLimit,
		DefaultBidder:        cfg.DefaultBidder,
		AcceptAfterClose:     cfg.AcceptAfterClose,
	}
}

// TickItem advances one item by a single tick. The countdown drops by one
// (never below zero); while the item is still open a random competing bid is
// injected with RandomBidProbability. Any LastBid from the previous tick is
// cleared unless a new one replaces it.
func (r Rules) TickItem(item model.Item, rnd RandomSource) model.Item {
	newTime := item.TimeLeft - 1
	if newTime < 0 {
		newTime = 0
	}

	if newTime > 0 && rnd.Float64() < r.RandomBidProbability {
		increase := int64(rnd.Float64()*float64(r.RandomBidSpan)) + r.RandomBidMin
		item = item.WithBid(model.BidEvent{
			Bidder: r.RandomBidder,
			Amount: item.HighestBid.Add(decimal.NewFromInt(increase)),
		}, r.HistoryLimit)
	} else {
		item.LastBid = nil
	}

	item.TimeLeft = newTime
	return item
}

package service

import (
	"context"
	"strings"
	"sync/atomic"

	"auction-live-api/internal/cache"
	"auction-live-api/internal/model"
	"auction-live-api/internal/repository"

	"github.com/rs/zerolog/log"
)

// Publisher receives the derived state after every mutation.
type Publisher interface {
	Publish(snap model.Snapshot)
}

// AuctionService owns the auction rules and is the only writer to the item
// store. Both the tick engine and bid submissions go through it.
type AuctionService struct {
	store     repository.ItemStore
	sessions  cache.SessionStore
	rnd       RandomSource
	rules     Rules
	publisher Publisher
	ticks     atomic.Uint64
}

// NewAuctionService creates a new auction service.
func NewAuctionService(store repository.ItemStore, sessions cache.SessionStore, rnd RandomSource, rules Rules) *AuctionService {
	if rnd == nil {
		rnd = NewRandomSource(0)
	}
	return &AuctionService{
		store:    store,
		sessions: sessions,
		rnd:      rnd,
		rules:    rules,
	}
}

// SetPublisher sets where snapshots go after each mutation.
func (s *AuctionService) SetPublisher(p Publisher) {
	s.publisher = p
}

// Rules returns the rules the service was built with.
func (s *AuctionService) Rules() Rules {
	return s.rules
}

// Ticks returns how many ticks have run.
func (s *AuctionService) Ticks() uint64 {
	return s.ticks.Load()
}

// Items returns all items in seed order.
func (s *AuctionService) Items(ctx context.Context) []model.Item {
	return s.store.List(ctx)
}

// Item returns a single item.
func (s *AuctionService) Item(ctx context.Context, id int) (model.Item, error) {
	return s.store.Get(ctx, id)
}

// Leaderboard ranks the current items by highest bid.
func (s *AuctionService) Leaderboard(ctx context.Context) []model.LeaderboardEntry {
	return Leaderboard(s.store.List(ctx))
}

// Snapshot returns items, views and leaderboard computed from one read.
func (s *AuctionService) Snapshot(ctx context.Context) model.Snapshot {
	return buildSnapshot(s.ticks.Load(), s.store.List(ctx))
}

// Tick runs one simulation step over every item and returns the new state.
func (s *AuctionService) Tick(ctx context.Context) []model.Item {
	items := s.store.Apply(ctx, func(item model.Item) model.Item {
		next := s.rules.TickItem(item, s.rnd)

		if next.LastBid != nil {
			log.Debug().
				Int("item_id", next.ID).
				Str("bidder", next.LastBid.Bidder).
				Str("amount", next.LastBid.Amount.String()).
				Msg("random bid injected")
		}
		if !item.Closed() && next.Closed() {
			log.Info().
				Int("item_id", next.ID).
				Str("name", next.Name).
				Str("final_bid", next.HighestBid.String()).
				Msg("auction closed")
		}
		return next
	})

	tick := s.ticks.Add(1)
	s.publish(tick, items)
	return items
}

// SubmitBid validates amountInput and, if it beats the current highest bid,
// records it against the item. An empty bidder name becomes the default
// bidder. Rejected bids leave the store unchanged.
func (s *AuctionService) SubmitBid(ctx context.Context, itemID int, bidder, amountInput string) (model.Item, error) {
	amount, err := ParseAmount(amountInput)
	if err != nil {
		return model.Item{}, err
	}

	bidder = strings.TrimSpace(bidder)
	if bidder == "" {
		bidder = s.rules.DefaultBidder
	}

	item, err := s.store.ApplyTo(ctx, itemID, func(item model.Item) (model.Item, error) {
		if item.Closed() && !s.rules.AcceptAfterClose {
			return item, ErrAuctionClosed
		}
		if !amount.GreaterThan(item.HighestBid) {
			return item, &BidTooLowError{
				ItemID:   item.ID,
				Currency: item.Currency,
				Amount:   amount,
				Current:  item.HighestBid,
			}
		}
		return item.WithBid(model.BidEvent{Bidder: bidder, Amount: amount}, s.rules.HistoryLimit), nil
	})
	if err != nil {
		log.Debug().Err(err).Int("item_id", itemID).Str("amount", amountInput).Msg("bid rejected")
		return model.Item{}, err
	}

	log.Info().
		Int("item_id", itemID).
		Str("bidder", bidder).
		Str("amount", amount.String()).
		Msg("bid accepted")

	s.publish(s.ticks.Load(), s.store.List(ctx))
	return item, nil
}

func (s *AuctionService) publish(tick uint64, items []model.Item) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(buildSnapshot(tick, items))
}

func buildSnapshot(tick uint64, items []model.Item) model.Snapshot {
	return model.Snapshot{
		Tick:        tick,
		Items:       Views(items),
		Leaderboard: Leaderboard(items),
	}
}

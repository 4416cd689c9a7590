package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auction-live-api/internal/cache"
	"auction-live-api/internal/model"
	"auction-live-api/pkg/uid"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OpenBidSession starts a bid form for an item, pre-filled with the current
// highest bid plus one bid step. Closed auctions cannot be opened.
func (s *AuctionService) OpenBidSession(ctx context.Context, itemID int, bidder string) (model.BidSession, error) {
	item, err := s.store.Get(ctx, itemID)
	if err != nil {
		return model.BidSession{}, err
	}
	if item.Closed() {
		return model.BidSession{}, fmt.Errorf("item %d: %w", itemID, ErrAuctionClosed)
	}

	bidder = strings.TrimSpace(bidder)
	if bidder == "" {
		bidder = s.rules.DefaultBidder
	}

	session := model.BidSession{
		ID:            uid.New(),
		ItemID:        item.ID,
		Bidder:        bidder,
		PendingAmount: item.HighestBid.Add(decimal.NewFromInt(s.rules.BidStep)).String(),
		OpenedAt:      s.sessions.Now(),
	}
	s.sessions.Put(session)

	log.Debug().
		Str("session_id", session.ID).
		Int("item_id", item.ID).
		Str("pending_amount", session.PendingAmount).
		Msg("bid session opened")

	return session, nil
}

// Session returns an open bid session.
func (s *AuctionService) Session(ctx context.Context, sessionID string) (model.BidSession, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.BidSession{}, sessionErr(sessionID, err)
	}
	return session, nil
}

// UpdateSession edits the form fields of a session. Nil fields are left as
// they are. The amount is stored as typed and only validated on submit.
func (s *AuctionService) UpdateSession(ctx context.Context, sessionID string, bidder, amount *string) (model.BidSession, error) {
	session, err := s.sessions.Update(sessionID, func(bs *model.BidSession) error {
		if bidder != nil {
			bs.Bidder = *bidder
		}
		if amount != nil {
			bs.PendingAmount = *amount
		}
		return nil
	})
	if err != nil {
		return model.BidSession{}, sessionErr(sessionID, err)
	}
	return session, nil
}

// IncrementPendingAmount adds delta to the pending amount, or one bid step
// when delta is zero. A pending amount that does not parse counts as zero. A
// result out of range fails with ErrInvalidAmount and leaves the session as
// it was.
func (s *AuctionService) IncrementPendingAmount(ctx context.Context, sessionID string, delta int64) (model.BidSession, error) {
	if delta == 0 {
		delta = s.rules.BidStep
	}

	session, err := s.sessions.Update(sessionID, func(bs *model.BidSession) error {
		current, err := ParseAmount(bs.PendingAmount)
		if err != nil {
			current = decimal.Zero
		}
		next := current.Add(decimal.NewFromInt(delta))
		if err := checkAmount(next); err != nil {
			return err
		}
		bs.PendingAmount = next.String()
		return nil
	})
	if err != nil {
		return model.BidSession{}, sessionErr(sessionID, err)
	}
	return session, nil
}

// SubmitSession submits the session's pending bid. The session is closed on
// success and stays open on any validation error so it can be corrected.
func (s *AuctionService) SubmitSession(ctx context.Context, sessionID string) (model.Item, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.Item{}, sessionErr(sessionID, err)
	}

	item, err := s.SubmitBid(ctx, session.ItemID, session.Bidder, session.PendingAmount)
	if err != nil {
		return model.Item{}, err
	}

	s.sessions.Delete(sessionID)
	log.Debug().Str("session_id", sessionID).Msg("bid session closed after submit")
	return item, nil
}

// CancelSession closes a session without bidding.
func (s *AuctionService) CancelSession(ctx context.Context, sessionID string) error {
	if !s.sessions.Delete(sessionID) {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return nil
}

// OpenSessions returns how many bid sessions are live.
func (s *AuctionService) OpenSessions() int {
	return s.sessions.Len()
}

func sessionErr(sessionID string, err error) error {
	if errors.Is(err, cache.ErrCacheMiss) {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return err
}

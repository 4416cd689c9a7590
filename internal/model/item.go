package model

import "github.com/shopspring/decimal"

// Item is a single lot on the block together with its bid and timer state.
type Item struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Currency   string          `json:"currency"`
	HighestBid decimal.Decimal `json:"highest_bid"`
	TimeLeft   int             `json:"time_left"` // whole seconds, never below zero
	LastBid    *BidEvent       `json:"last_bid,omitempty"`
	History    []BidEvent      `json:"history"` // newest first
}

// BidEvent records one accepted bid.
type BidEvent struct {
	Bidder string          `json:"bidder"`
	Amount decimal.Decimal `json:"amount"`
}

// Closed reports whether the countdown has reached zero.
func (i Item) Closed() bool {
	return i.TimeLeft <= 0
}

// Clone returns a copy that shares no slices or pointers with i.
func (i Item) Clone() Item {
	out := i
	if i.LastBid != nil {
		last := *i.LastBid
		out.LastBid = &last
	}
	out.History = make([]BidEvent, len(i.History))
	copy(out.History, i.History)
	return out
}

// WithBid returns a copy of i carrying ev as its highest bid. History keeps at
// most limit entries, newest first.
func (i Item) WithBid(ev BidEvent, limit int) Item {
	out := i
	out.HighestBid = ev.Amount
	last := ev
	out.LastBid = &last

	n := len(i.History)
	if n > limit-1 {
		n = limit - 1
	}
	if n < 0 {
		n = 0
	}
	history := make([]BidEvent, 0, n+1)
	history = append(history, ev)
	history = append(history, i.History[:n]...)
	out.History = history
	return out
}

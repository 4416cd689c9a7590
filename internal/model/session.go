package model

import "time"

// BidSession is an open bid form: the item being bid on, who is bidding and
// the amount typed so far. PendingAmount is kept as entered and only parsed
// on submit.
type BidSession struct {
	ID            string    `json:"id"`
	ItemID        int       `json:"item_id"`
	Bidder        string    `json:"bidder"`
	PendingAmount string    `json:"pending_amount"`
	OpenedAt      time.Time `json:"opened_at"`
}

package service

import (
	"errors"
	"fmt"

	"auction-live-api/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount means the entered amount is not a well-formed number.
	ErrInvalidAmount = errors.New("invalid bid amount")

	// ErrBidTooLow means the amount does not beat the current highest bid.
	ErrBidTooLow = errors.New("bid too low")

	// ErrAuctionClosed means the item's countdown has already reached zero.
	ErrAuctionClosed = errors.New("auction closed")

	// ErrSessionNotFound means the bid session is unknown or has expired.
	ErrSessionNotFound = errors.New("bid session not found")

	// ErrItemNotFound is re-exported so callers only need this package.
	ErrItemNotFound = repository.ErrItemNotFound
)

// BidTooLowError carries the highest bid the rejected amount failed to beat.
type BidTooLowError struct {
	ItemID   int
	Currency string
	Amount   decimal.Decimal
	Current  decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("Bid must be higher than current highest bid (%s %s)", e.Currency, FormatAmount(e.Current))
}

// Is lets errors.Is match ErrBidTooLow.
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

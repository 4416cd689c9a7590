package repository

import (
	"auction-live-api/internal/model"

	"github.com/shopspring/decimal"
)

// SeedItems returns the fixed lot list every auction starts with. Each item
// gets duration seconds on the clock.
func SeedItems(duration int) []model.Item {
	lots := []struct {
		name  string
		image string
		bid   int64
	}{
		{"1967 Ford Mustang", "/static/img/Ford-Mustang.webp", 2500000},
		{"1955 Mercedes-Benz 300SL", "/static/img/Mercedes.webp", 7500000},
		{"1961 Jaguar E-Type", "/static/img/jaguar.jpeg", 3500000},
		{"1970 Dodge Charger", "/static/img/Dodge.jpeg", 2800000},
	}

	items := make([]model.Item, len(lots))
	for i, lot := range lots {
		items[i] = model.Item{
			ID:         i + 1,
			Name:       lot.name,
			Image:      lot.image,
			Currency:   "INR",
			HighestBid: decimal.NewFromInt(lot.bid),
			TimeLeft:   duration,
			History:    []model.BidEvent{},
		}
	}
	return items
}

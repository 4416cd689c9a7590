package handler

import (
	"net/http"
	"runtime"
	"time"

	"auction-live-api/internal/service"
	"auction-live-api/pkg/response"
)

// ClientCounter reports connected live viewers.
type ClientCounter interface {
	ClientCount() int
}

// AdminHandler exposes runtime statistics of the simulation.
type AdminHandler struct {
	auction   *service.AuctionService
	viewers   ClientCounter
	startTime time.Time
}

// NewAdminHandler creates a new admin handler. viewers may be nil.
func NewAdminHandler(auction *service.AuctionService, viewers ClientCounter) *AdminHandler {
	return &AdminHandler{
		auction:   auction,
		viewers:   viewers,
		startTime: time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	items := h.auction.Items(r.Context())

	open := 0
	bids := 0
	for _, item := range items {
		if !item.Closed() {
			open++
		}
		bids += len(item.History)
	}

	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"uptime_human":   time.Since(h.startTime).Round(time.Second).String(),
		"server_time":    time.Now().Format(time.RFC3339),
		"ticks":          h.auction.Ticks(),
		"items_total":    len(items),
		"items_open":     open,
		"recent_bids":    bids,
		"open_sessions":  h.auction.OpenSessions(),
	}
	if top, ok := service.TopBid(items); ok {
		stats["top_bid"] = top.String()
	}
	if h.viewers != nil {
		stats["live_viewers"] = h.viewers.ClientCount()
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
		"goroutines": runtime.NumGoroutine(),
	}

	response.OK(w, stats)
}

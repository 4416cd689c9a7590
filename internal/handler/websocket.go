package handler

import (
	"net/http"

	"auction-live-api/internal/broadcast"
	"auction-live-api/internal/middleware"
	"auction-live-api/internal/service"
)

// WebSocketHandler streams auction snapshots to live viewers.
type WebSocketHandler struct {
	hub     *broadcast.Hub
	auction *service.AuctionService
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(hub *broadcast.Hub, auction *service.AuctionService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		auction: auction,
	}
}

// Stream handles GET /api/v1/ws
func (h *WebSocketHandler) Stream(w http.ResponseWriter, r *http.Request) {
	// The upgrader has already written an HTTP error when this fails.
	if err := h.hub.ServeWS(w, r, h.auction.Snapshot(r.Context())); err != nil {
		middleware.Logger(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
	}
}

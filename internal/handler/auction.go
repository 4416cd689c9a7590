package handler

import (
	"net/http"

	"auction-live-api/internal/middleware"
	"auction-live-api/internal/model"
	"auction-live-api/internal/service"
	"auction-live-api/pkg/response"
)

// AuctionHandler serves item, leaderboard and bid endpoints.
type AuctionHandler struct {
	auction *service.AuctionService
}

// NewAuctionHandler creates a new auction handler.
func NewAuctionHandler(auction *service.AuctionService) *AuctionHandler {
	return &AuctionHandler{
		auction: auction,
	}
}

// ListItems handles GET /api/v1/items
func (h *AuctionHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	response.OK(w, service.Views(h.auction.Items(r.Context())))
}

// GetItem handles GET /api/v1/items/{id}
func (h *AuctionHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	view, ok := findView(service.Views(h.auction.Items(r.Context())), id)
	if !ok {
		response.Error(w, toAPIError(service.ErrItemNotFound))
		return
	}
	response.OK(w, view)
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *AuctionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.auction.Leaderboard(r.Context()))
}

// Snapshot handles GET /api/v1/snapshot
func (h *AuctionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.auction.Snapshot(r.Context()))
}

// BidRequest is the body of a direct bid.
type BidRequest struct {
	Bidder string      `json:"bidder"`
	Amount amountField `json:"amount"`
}

// PlaceBid handles POST /api/v1/items/{id}/bids
func (h *AuctionHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req BidRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	item, err := h.auction.SubmitBid(r.Context(), id, req.Bidder, string(req.Amount))
	if err != nil {
		apiErr := toAPIError(err)
		if apiErr.StatusCode >= http.StatusInternalServerError {
			middleware.Logger(r.Context()).Error().Err(err).Int("item_id", id).Msg("bid failed")
		}
		response.Error(w, apiErr)
		return
	}

	response.Created(w, item)
}

func findView(views []model.ItemView, id int) (model.ItemView, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return model.ItemView{}, false
}

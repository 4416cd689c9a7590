package handler

import (
	"net/http"

	"auction-live-api/internal/service"
	"auction-live-api/pkg/response"
	"auction-live-api/pkg/uid"

	"github.com/go-chi/chi/v5"
)

// OpenSessionRequest is the optional body for opening a bid session.
type OpenSessionRequest struct {
	Bidder string `json:"bidder"`
}

// UpdateSessionRequest edits the fields of a bid form. Absent fields are kept.
type UpdateSessionRequest struct {
	Bidder *string      `json:"bidder"`
	Amount *amountField `json:"amount"`
}

// IncrementRequest is the optional body for the quick-bid button.
type IncrementRequest struct {
	Delta int64 `json:"delta"`
}

// OpenSession handles POST /api/v1/items/{id}/sessions
func (h *AuctionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.auction.OpenBidSession(r.Context(), id, req.Bidder)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.Created(w, session)
}

// GetSession handles GET /api/v1/sessions/{sid}
func (h *AuctionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		response.Error(w, toAPIError(service.ErrSessionNotFound))
		return
	}

	session, err := h.auction.Session(r.Context(), sid)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.OK(w, session)
}

// UpdateSession handles PATCH /api/v1/sessions/{sid}
func (h *AuctionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		response.Error(w, toAPIError(service.ErrSessionNotFound))
		return
	}

	var req UpdateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	var amount *string
	if req.Amount != nil {
		s := string(*req.Amount)
		amount = &s
	}

	session, err := h.auction.UpdateSession(r.Context(), sid, req.Bidder, amount)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.OK(w, session)
}

// IncrementSession handles POST /api/v1/sessions/{sid}/increment
func (h *AuctionHandler) IncrementSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		response.Error(w, toAPIError(service.ErrSessionNotFound))
		return
	}

	var req IncrementRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.auction.IncrementPendingAmount(r.Context(), sid, req.Delta)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.OK(w, session)
}

// SubmitSession handles POST /api/v1/sessions/{sid}/submit
func (h *AuctionHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		response.Error(w, toAPIError(service.ErrSessionNotFound))
		return
	}

	item, err := h.auction.SubmitSession(r.Context(), sid)
	if err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.Created(w, item)
}

// CancelSession handles DELETE /api/v1/sessions/{sid}
func (h *AuctionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		response.Error(w, toAPIError(service.ErrSessionNotFound))
		return
	}

	if err := h.auction.CancelSession(r.Context(), sid); err != nil {
		response.Error(w, toAPIError(err))
		return
	}
	response.NoContent(w)
}

func sessionIDParam(r *http.Request) (string, bool) {
	return uid.Normalize(chi.URLParam(r, "sid"))
}

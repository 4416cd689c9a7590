package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"auction-live-api/internal/service"
	"auction-live-api/pkg/apierror"

	"github.com/go-chi/chi/v5"
)

const amountRule = "must be a number with at most 18 integer digits and 8 decimal places"

// toAPIError maps service errors onto API errors.
func toAPIError(err error) *apierror.Error {
	var tooLow *service.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		return apierror.BidTooLow(tooLow.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		return apierror.InvalidAmount("Bid amount must be a number").
			WithDetails(apierror.FieldError{Field: "amount", Message: amountRule})
	case errors.Is(err, service.ErrAuctionClosed):
		return apierror.AuctionClosed("")
	case errors.Is(err, service.ErrItemNotFound):
		return apierror.NotFound("item not found")
	case errors.Is(err, service.ErrSessionNotFound):
		return apierror.NotFound("bid session not found or expired")
	default:
		return apierror.InternalError("")
	}
}

// decodeJSON decodes an optional JSON body. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apierror.BadRequest("invalid JSON")
	}
	return nil
}

func itemIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("item id must be a positive integer")
	}
	return id, nil
}

// amountField accepts a bid amount sent either as a JSON string or a JSON
// number and keeps it as text for the service to parse.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	*a = amountField(data)
	return nil
}

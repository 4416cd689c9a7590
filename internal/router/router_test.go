package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-live-api/internal/cache"
	"auction-live-api/internal/handler"
	"auction-live-api/internal/repository"
	"auction-live-api/internal/service"

	"github.com/jonboulle/clockwork"
)

type staticRandom float64

func (r staticRandom) Float64() float64 { return float64(r) }

type stubRunner bool

func (s stubRunner) IsRunning() bool { return bool(s) }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, engineRunning bool) (*httptest.Server, *service.AuctionService) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	store := repository.NewMemoryItemStore(repository.SeedItems(60))
	sessions := cache.NewSessionCache(clock, 10*time.Minute, 0)
	auction := service.NewAuctionService(store, sessions, staticRandom(0.99), service.DefaultRules())

	r := New(Config{
		Handler:        handler.New("auction-live-api", "test", stubRunner(engineRunning)),
		AuctionHandler: handler.NewAuctionHandler(auction),
		AdminHandler:   handler.NewAdminHandler(auction, nil),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, auction
}

func do(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode, env
}

func TestRouter_itemsAndLeaderboard(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true)

	status, env := do(t, http.MethodGet, srv.URL+"/api/v1/items", "")
	if status != http.StatusOK {
		t.Fatalf("status got %d, want 200", status)
	}
	var items []struct {
		ID        int  `json:"id"`
		IsHighest bool `json:"is_highest"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("items len got %d, want 4", len(items))
	}
	for _, it := range items {
		if it.IsHighest != (it.ID == 2) {
			t.Errorf("item %d IsHighest got %v", it.ID, it.IsHighest)
		}
	}

	_, env = do(t, http.MethodGet, srv.URL+"/api/v1/leaderboard", "")
	var board []struct {
		ItemID int `json:"item_id"`
	}
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatalf("unmarshal leaderboard: %v", err)
	}
	want := []int{2, 3, 4, 1}
	for i, row := range board {
		if row.ItemID != want[i] {
			t.Errorf("rank %d got item %d, want %d", i+1, row.ItemID, want[i])
		}
	}

	if status, _ := do(t, http.MethodGet, srv.URL+"/api/v1/items/2", ""); status != http.StatusOK {
		t.Errorf("GET item status got %d, want 200", status)
	}
	if status, env := do(t, http.MethodGet, srv.URL+"/api/v1/items/9", ""); status != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Errorf("GET unknown item got %d/%s, want 404/NOT_FOUND", status, env.Error.Code)
	}
	if status, _ := do(t, http.MethodGet, srv.URL+"/api/v1/items/abc", ""); status != http.StatusBadRequest {
		t.Errorf("GET bad id status got %d, want 400", status)
	}
}

func TestRouter_PlaceBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "too low", body: `{"bidder":"Alice","amount":"2400000"}`, status: http.StatusConflict, code: "BID_TOO_LOW"},
		{name: "not a number", body: `{"bidder":"Alice","amount":"abc"}`, status: http.StatusBadRequest, code: "INVALID_AMOUNT"},
		{name: "out of range", body: `{"bidder":"Alice","amount":"1e19"}`, status: http.StatusBadRequest, code: "INVALID_AMOUNT"},
		{name: "malformed json", body: `{"amount":`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "string amount", body: `{"bidder":"Alice","amount":"2600000"}`, status: http.StatusCreated},
		{name: "number amount", body: `{"bidder":"Alice","amount":2600000}`, status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, auction := newTestServer(t, true)
			status, env := do(t, http.MethodPost, srv.URL+"/api/v1/items/1/bids", tt.body)

			if status != tt.status {
				t.Fatalf("status got %d, want %d (%s)", status, tt.status, env.Error.Message)
			}
			if env.Error.Code != tt.code {
				t.Errorf("code got %q, want %q", env.Error.Code, tt.code)
			}

			item, _ := auction.Item(t.Context(), 1)
			accepted := tt.status == http.StatusCreated
			if got := item.HighestBid.String(); accepted && got != "2600000" || !accepted && got != "2500000" {
				t.Errorf("HighestBid got %s after %s", got, tt.name)
			}
		})
	}
}

func TestRouter_bidSessionFlow(t *testing.T) {
	t.Parallel()

	srv, auction := newTestServer(t, true)

	status, env := do(t, http.MethodPost, srv.URL+"/api/v1/items/1/sessions", `{"bidder":"Alice"}`)
	if status != http.StatusCreated {
		t.Fatalf("open status got %d, want 201", status)
	}
	var session struct {
		ID            string `json:"id"`
		PendingAmount string `json:"pending_amount"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if session.PendingAmount != "2550000" {
		t.Errorf("PendingAmount got %q, want 2550000", session.PendingAmount)
	}
	base := srv.URL + "/api/v1/sessions/" + session.ID

	_, env = do(t, http.MethodPost, base+"/increment", "")
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	if session.PendingAmount != "2600000" {
		t.Errorf("PendingAmount got %q, want 2600000", session.PendingAmount)
	}

	if status, _ := do(t, http.MethodPatch, base, `{"amount":"oops"}`); status != http.StatusOK {
		t.Fatalf("patch status got %d, want 200", status)
	}
	if status, env := do(t, http.MethodPost, base+"/submit", ""); status != http.StatusBadRequest || env.Error.Code != "INVALID_AMOUNT" {
		t.Fatalf("submit got %d/%s, want 400/INVALID_AMOUNT", status, env.Error.Code)
	}

	if status, _ := do(t, http.MethodPatch, base, `{"amount":2700000}`); status != http.StatusOK {
		t.Fatalf("patch status got %d, want 200", status)
	}
	if status, _ := do(t, http.MethodPost, base+"/submit", ""); status != http.StatusCreated {
		t.Fatalf("submit status got %d, want 201", status)
	}

	item, _ := auction.Item(t.Context(), 1)
	if item.HighestBid.String() != "2700000" || item.LastBid.Bidder != "Alice" {
		t.Errorf("item after submit got %s by %+v", item.HighestBid, item.LastBid)
	}

	if status, _ := do(t, http.MethodGet, base, ""); status != http.StatusNotFound {
		t.Errorf("session after submit status got %d, want 404", status)
	}
	if status, _ := do(t, http.MethodDelete, srv.URL+"/api/v1/sessions/not-a-uuid", ""); status != http.StatusNotFound {
		t.Errorf("delete bad id status got %d, want 404", status)
	}
}

func TestRouter_cancelSession(t *testing.T) {
	t.Parallel()

	srv, auction := newTestServer(t, true)
	_, env := do(t, http.MethodPost, srv.URL+"/api/v1/items/3/sessions", "")
	var session struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}

	if status, _ := do(t, http.MethodDelete, srv.URL+"/api/v1/sessions/"+session.ID, ""); status != http.StatusNoContent {
		t.Fatalf("delete status got %d, want 204", status)
	}
	if auction.OpenSessions() != 0 {
		t.Errorf("OpenSessions got %d, want 0", auction.OpenSessions())
	}
}

func TestRouter_closedAuction(t *testing.T) {
	t.Parallel()

	srv, auction := newTestServer(t, true)
	for i := 0; i < 60; i++ {
		auction.Tick(t.Context())
	}

	if status, env := do(t, http.MethodPost, srv.URL+"/api/v1/items/1/sessions", ""); status != http.StatusConflict || env.Error.Code != "AUCTION_CLOSED" {
		t.Errorf("open on closed got %d/%s, want 409/AUCTION_CLOSED", status, env.Error.Code)
	}
	if status, env := do(t, http.MethodPost, srv.URL+"/api/v1/items/1/bids", `{"amount":"9999999"}`); status != http.StatusConflict || env.Error.Code != "AUCTION_CLOSED" {
		t.Errorf("bid on closed got %d/%s, want 409/AUCTION_CLOSED", status, env.Error.Code)
	}
}

func TestRouter_healthAndStats(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, true)
	for _, path := range []string{"/api/status", "/api/v1/health", "/api/v1/ready", "/api/v1/admin/stats", "/api/v1/snapshot"} {
		if status, _ := do(t, http.MethodGet, srv.URL+path, ""); status != http.StatusOK {
			t.Errorf("GET %s status got %d, want 200", path, status)
		}
	}

	_, env := do(t, http.MethodGet, srv.URL+"/api/status", "")
	var status struct {
		Service string `json:"service"`
	}
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if status.Service != "auction-live-api" {
		t.Errorf("status service got %q, want auction-live-api", status.Service)
	}

	stopped, _ := newTestServer(t, false)
	if status, env := do(t, http.MethodGet, stopped.URL+"/api/v1/ready", ""); status != http.StatusServiceUnavailable || env.Error.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("ready with stopped engine got %d/%s, want 503", status, env.Error.Code)
	}
}

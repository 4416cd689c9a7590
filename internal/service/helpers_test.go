package service

import (
	"sync"
	"testing"
	"time"

	"auction-live-api/internal/cache"
	"auction-live-api/internal/model"
	"auction-live-api/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// scriptedRandom replays a fixed sequence of draws, cycling when exhausted.
type scriptedRandom struct {
	mu    sync.Mutex
	draws []float64
	next  int
	calls int
}

func newScriptedRandom(draws ...float64) *scriptedRandom {
	return &scriptedRandom{draws: draws}
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.draws[r.next%len(r.draws)]
	r.next++
	r.calls++
	return v
}

func (r *scriptedRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// neverBids fails every probability gate.
func neverBids() *scriptedRandom { return newScriptedRandom(0.99) }

type recordingPublisher struct {
	ch chan model.Snapshot
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{ch: make(chan model.Snapshot, 64)}
}

func (p *recordingPublisher) Publish(snap model.Snapshot) {
	p.ch <- snap
}

func (p *recordingPublisher) next(t *testing.T) model.Snapshot {
	t.Helper()
	select {
	case snap := <-p.ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot published")
		return model.Snapshot{}
	}
}

func newTestService(t *testing.T, rnd RandomSource, rules Rules) (*AuctionService, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	sessions := cache.NewSessionCache(clock, 10*time.Minute, 0)
	store := repository.NewMemoryItemStore(repository.SeedItems(60))
	return NewAuctionService(store, sessions, rnd, rules), clock
}

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func sameEvent(a, b model.BidEvent) bool {
	return a.Bidder == b.Bidder && a.Amount.Equal(b.Amount)
}

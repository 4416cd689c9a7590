package service

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// TickEngine drives AuctionService.Tick at a fixed interval. The interval is
// not drift-corrected; a late tick simply runs late.
type TickEngine struct {
	auction  *AuctionService
	clock    clockwork.Clock
	interval time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	isRunning bool
}

// NewTickEngine creates a tick engine. A nil clock means the real clock.
func NewTickEngine(auction *AuctionService, clock clockwork.Clock, interval time.Duration) *TickEngine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = time.Second
	}

	return &TickEngine{
		auction:  auction,
		clock:    clock,
		interval: interval,
	}
}

// Start runs the engine in a goroutine until ctx is cancelled or Stop is called.
func (e *TickEngine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isRunning {
		return
	}

	// A loop ended by its parent ctx still holds a cancel func.
	if e.cancel != nil {
		e.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.isRunning = true

	go func() {
		defer close(e.done)
		e.Run(ctx)

		e.mu.Lock()
		e.isRunning = false
		e.mu.Unlock()
	}()
}

// Run ticks until ctx is done. The underlying ticker is always released
// before Run returns.
func (e *TickEngine) Run(ctx context.Context) {
	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", e.interval).Msg("tick engine started")

	for {
		select {
		case <-ticker.Chan():
			e.auction.Tick(ctx)
		case <-ctx.Done():
			log.Info().Uint64("ticks", e.auction.Ticks()).Msg("tick engine stopped")
			return
		}
	}
}

// Stop cancels the engine and waits for the loop to exit. It is safe to call
// more than once and on an engine that never started; a stopped engine can be
// started again.
func (e *TickEngine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// IsRunning reports whether the tick loop is active.
func (e *TickEngine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isRunning
}

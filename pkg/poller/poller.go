// Package poller runs a fetch on a fixed interval. A new tick cancels the
// fetch started by the previous tick, and results from superseded ticks are
// dropped, so a slow response can never overwrite a newer one.
package poller

import (
	"context"
	"sync"
	"time"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

type Poller[T any] struct {
	interval time.Duration
	fetch    FetchFunc[T]
	onResult func(T)
	onError  func(error)

	mu       sync.Mutex
	gen      uint64
	inFlight context.CancelFunc
	runCtx   context.Context
	stop     context.CancelFunc
	trigger  chan struct{}
	loopDone chan struct{}
	fetches  sync.WaitGroup
}

// New builds a poller. onResult and onError run while the poller holds its
// lock and must not call back into it. onError may be nil.
func New[T any](interval time.Duration, fetch FetchFunc[T], onResult func(T), onError func(error)) *Poller[T] {
	if onError == nil {
		onError = func(error) {}
	}
	return &Poller[T]{
		interval: interval,
		fetch:    fetch,
		onResult: onResult,
		onError:  onError,
		trigger:  make(chan struct{}, 1),
	}
}

// Start fires the first tick immediately. Calling Start twice is a no-op.
func (p *Poller[T]) Start(parent context.Context) {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return
	}
	p.runCtx, p.stop = context.WithCancel(parent)
	p.loopDone = make(chan struct{})
	p.mu.Unlock()

	go p.loop()
}

// Trigger requests an extra tick without waiting for the interval.
func (p *Poller[T]) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the in-flight fetch and waits for all goroutines to exit.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.loopDone
	p.mu.Unlock()
	if stop == nil {
		return
	}

	stop()
	<-done

	p.mu.Lock()
	if p.inFlight != nil {
		p.inFlight()
	}
	p.gen++
	p.mu.Unlock()
	p.fetches.Wait()
}

func (p *Poller[T]) loop() {
	defer close(p.loopDone)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick()
	for {
		select {
		case <-p.runCtx.Done():
			return
		case <-ticker.C:
			p.tick()
		case <-p.trigger:
			p.tick()
		}
	}
}

func (p *Poller[T]) tick() {
	p.mu.Lock()
	if p.inFlight != nil {
		p.inFlight()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(p.runCtx)
	p.inFlight = cancel
	p.fetches.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.fetches.Done()
		defer cancel()

		v, err := p.fetch(ctx)

		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen || ctx.Err() != nil {
			return
		}
		if err != nil {
			p.onError(err)
			return
		}
		p.onResult(v)
	}()
}

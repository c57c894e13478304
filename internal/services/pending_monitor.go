package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"moneyflow/internal/repositories"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/poller"
)

type PendingMonitorInterface interface {
	PendingNotifier
	// PendingCount returns the latest polled count for the owner and
	// unix seconds of when it was observed.
	PendingCount(ctx context.Context, ownerID string) (int, int64, error)
	StopAll()
}

// An owner whose count has not been read for this many intervals loses its
// poller until the next read.
const pendingIdleIntervals = 3

type pendingEntry struct {
	poller    *poller.Poller[int]
	count     int
	updatedAt int64
	ready     bool
	lastRead  time.Time
}

// PendingMonitor keeps one poller per owner that re-fetches the full
// pending list on a fixed interval and caches its size. Owners nobody reads
// are swept on the same interval.
type PendingMonitor struct {
	repo      repositories.EditRequestRepository
	interval  time.Duration
	idleAfter time.Duration

	mu        sync.Mutex
	base      context.Context
	cancel    context.CancelFunc
	entries   map[string]*pendingEntry
	sweepDone chan struct{}
}

func NewPendingMonitor(repo repositories.EditRequestRepository, interval time.Duration) *PendingMonitor {
	base, cancel := context.WithCancel(context.Background())
	m := &PendingMonitor{
		repo:      repo,
		interval:  interval,
		idleAfter: pendingIdleIntervals * interval,
		base:      base,
		cancel:    cancel,
		entries:   make(map[string]*pendingEntry),
		sweepDone: make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

func (m *PendingMonitor) PendingCount(ctx context.Context, ownerID string) (int, int64, error) {
	m.mu.Lock()
	e := m.ensure(ownerID)
	e.lastRead = time.Now()
	count, at, ready := e.count, e.updatedAt, e.ready
	m.mu.Unlock()

	if ready {
		return count, at, nil
	}

	// Nothing polled yet: answer from a direct read and seed the cache.
	list, err := m.repo.ListPendingForOwner(ctx, ownerID)
	if err != nil {
		return 0, 0, err
	}
	now := time.Now().Unix()

	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ready {
		return e.count, e.updatedAt, nil
	}
	e.count, e.updatedAt, e.ready = len(list), now, true
	return e.count, e.updatedAt, nil
}

// Refresh forces an immediate poll for an owner that is being monitored.
func (m *PendingMonitor) Refresh(ownerID string) {
	m.mu.Lock()
	e, ok := m.entries[ownerID]
	m.mu.Unlock()
	if ok {
		e.poller.Trigger()
	}
}

func (m *PendingMonitor) StopAll() {
	m.cancel()
	<-m.sweepDone

	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*pendingEntry)
	m.mu.Unlock()

	for _, e := range entries {
		e.poller.Stop()
	}
}

func (m *PendingMonitor) sweepLoop() {
	defer close(m.sweepDone)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.base.Done():
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

// evictIdle stops the pollers of owners not read since now-idleAfter and
// returns how many were dropped.
func (m *PendingMonitor) evictIdle(now time.Time) int {
	m.mu.Lock()
	var idle []*pendingEntry
	for ownerID, e := range m.entries {
		if now.Sub(e.lastRead) > m.idleAfter {
			idle = append(idle, e)
			delete(m.entries, ownerID)
		}
	}
	m.mu.Unlock()

	for _, e := range idle {
		e.poller.Stop()
	}
	if len(idle) > 0 {
		logger.Get().Debug("stopped idle pending pollers", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// ensure must be called with m.mu held.
func (m *PendingMonitor) ensure(ownerID string) *pendingEntry {
	if e, ok := m.entries[ownerID]; ok {
		return e
	}

	e := &pendingEntry{lastRead: time.Now()}
	fetch := func(ctx context.Context) (int, error) {
		list, err := m.repo.ListPendingForOwner(ctx, ownerID)
		if err != nil {
			return 0, err
		}
		return len(list), nil
	}
	onResult := func(n int) {
		m.mu.Lock()
		e.count, e.updatedAt, e.ready = n, time.Now().Unix(), true
		m.mu.Unlock()
	}
	onError := func(err error) {
		logger.Get().Warn("pending request poll failed", zap.String("owner_id", ownerID), zap.Error(err))
	}

	e.poller = poller.New(m.interval, fetch, onResult, onError)
	m.entries[ownerID] = e
	e.poller.Start(m.base)
	return e
}

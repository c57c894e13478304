package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/request_models"
)

func TestPendingMonitor_CountsAndRefreshes(t *testing.T) {
	f := newEditFixture()
	monitor := NewPendingMonitor(f.requests, 20*time.Millisecond)
	defer monitor.StopAll()

	ctx := context.Background()
	count, at, err := monitor.PendingCount(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NotZero(t, at)

	svc := NewEditRequestService(f.trips, f.requests, monitor)
	_, err = svc.CreateEditRequest(ctx, "member", f.trip.ID.String(), request_models.CreateEditRequestRequest{
		Kind: string(db_models.EditKindPermission),
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		n, _, err := monitor.PendingCount(ctx, "owner")
		return err == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPendingMonitor_StopAllCancelsInFlightPolls(t *testing.T) {
	f := newEditFixture()
	started := make(chan struct{}, 16)
	f.requests.listHook = func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return ctx.Err()
	}

	monitor := NewPendingMonitor(f.requests, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := monitor.PendingCount(ctx, "owner")
	require.Error(t, err)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("poller never fetched")
	}

	done := make(chan struct{})
	go func() {
		monitor.StopAll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StopAll did not return")
	}
}

func TestPendingMonitor_IdleOwnersStopPolling(t *testing.T) {
	f := newEditFixture()
	var fetches atomic.Int64
	f.requests.listHook = func(context.Context) error {
		fetches.Add(1)
		return nil
	}

	monitor := NewPendingMonitor(f.requests, 10*time.Millisecond)
	defer monitor.StopAll()

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, _, err := monitor.PendingCount(ctx, fmt.Sprintf("owner-%d", i))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		monitor.mu.Lock()
		defer monitor.mu.Unlock()
		return len(monitor.entries) == 0
	}, 2*time.Second, 10*time.Millisecond)

	// let the stopped pollers drain
	time.Sleep(50 * time.Millisecond)
	settled := fetches.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, fetches.Load())
}

func TestPendingMonitor_EvictIdleKeepsRecentReaders(t *testing.T) {
	f := newEditFixture()
	monitor := NewPendingMonitor(f.requests, time.Hour)
	defer monitor.StopAll()

	ctx := context.Background()
	_, _, err := monitor.PendingCount(ctx, "idle")
	require.NoError(t, err)
	_, _, err = monitor.PendingCount(ctx, "active")
	require.NoError(t, err)

	monitor.mu.Lock()
	monitor.entries["idle"].lastRead = time.Now().Add(-4 * time.Hour)
	monitor.mu.Unlock()

	assert.Equal(t, 1, monitor.evictIdle(time.Now()))

	monitor.mu.Lock()
	_, idleLeft := monitor.entries["idle"]
	_, activeLeft := monitor.entries["active"]
	monitor.mu.Unlock()
	assert.False(t, idleLeft)
	assert.True(t, activeLeft)

	// A later read brings the owner back.
	_, _, err = monitor.PendingCount(ctx, "idle")
	require.NoError(t, err)
	monitor.mu.Lock()
	assert.Contains(t, monitor.entries, "idle")
	monitor.mu.Unlock()
}

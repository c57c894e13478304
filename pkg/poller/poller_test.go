package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTickCancelsAndDropsStaleFetch(t *testing.T) {
	var calls atomic.Int32
	firstCancelled := make(chan struct{})
	firstStarted := make(chan struct{})

	fetch := func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-ctx.Done()
			close(firstCancelled)
			// A misbehaving fetch that still returns a value must be ignored.
			return 1, nil
		}
		return 42, nil
	}

	var mu sync.Mutex
	var results []int
	got := make(chan struct{}, 1)
	p := New(time.Hour, fetch, func(v int) {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		got <- struct{}{}
	}, nil)

	p.Start(context.Background())
	defer p.Stop()

	<-firstStarted
	p.Trigger()

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	select {
	case <-firstCancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch was not cancelled")
	}

	p.Stop()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{42}, results)
}

func TestStopCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	var sawCancel atomic.Bool

	p := New(time.Hour, func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
		return "", ctx.Err()
	}, func(string) { t.Error("result after stop") }, func(err error) { t.Errorf("error after stop: %v", err) })

	p.Start(context.Background())
	<-started
	p.Stop()

	assert.True(t, sawCancel.Load())
}

func TestPeriodicTicksDeliverErrorsAndResults(t *testing.T) {
	var calls atomic.Int32
	errBoom := errors.New("boom")

	results := make(chan int, 10)
	errs := make(chan error, 10)
	p := New(10*time.Millisecond, func(ctx context.Context) (int, error) {
		n := calls.Add(1)
		if n == 1 {
			return 0, errBoom
		}
		return int(n), nil
	}, func(v int) {
		select {
		case results <- v:
		default:
		}
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})

	p.Start(context.Background())
	defer p.Stop()

	select {
	case err := <-errs:
		require.ErrorIs(t, err, errBoom)
	case <-time.After(2 * time.Second):
		t.Fatal("no error delivered")
	}
	select {
	case v := <-results:
		assert.GreaterOrEqual(t, v, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

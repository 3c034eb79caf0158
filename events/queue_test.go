package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueRequestResetNeverBlocks(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(1)

	// posting more requests than the capacity must not block
	for i := 0; i < 10; i++ {
		q.RequestReset(ctx)
	}

	require.Len(t, q.Chan(), 1)
}

func TestQueueServeHandler(t *testing.T) {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()
	q := NewQueue(0)

	handled := make(chan struct{}, 1)
	q.StartHandler(ctx, func(ctx context.Context) {
		handled <- struct{}{}
	})

	q.RequestReset(ctx)
	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("the handler was not invoked")
	}
}

func TestQueueClose(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.ServeHandler(ctx, func(ctx context.Context) {})
	}()

	q.Close(ctx)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeHandler did not return after Close")
	}

	// posting to a closed queue is a no-op
	q.RequestReset(ctx)
	require.Len(t, q.Chan(), 0)
}

// queue.go implements a process-wide queue of stream-reset requests.

package events

import (
	"context"

	"github.com/xaionaro-go/blackframe/helpers/closuresignaler"
	"github.com/xaionaro-go/blackframe/logger"
	"github.com/xaionaro-go/observability"
)

const defaultQueueCapacity = 16

// Queue is a buffered queue of reset requests. Posting never blocks: if
// the queue is full the request is dropped (the receiver is already
// behind on reset requests anyway, so a dropped duplicate loses nothing).
type Queue struct {
	*closuresignaler.ClosureSignaler
	c chan struct{}
}

var _ ResetRequester = (*Queue)(nil)

func NewQueue(capacity uint) *Queue {
	if capacity == 0 {
		capacity = defaultQueueCapacity
	}
	return &Queue{
		ClosureSignaler: closuresignaler.New(),
		c:               make(chan struct{}, capacity),
	}
}

func (q *Queue) String() string {
	return "ResetRequestQueue"
}

func (q *Queue) RequestReset(ctx context.Context) {
	logger.Debugf(ctx, "RequestReset")
	if q.IsClosed() {
		logger.Debugf(ctx, "the queue is already closed, dropping the reset request")
		return
	}
	select {
	case q.c <- struct{}{}:
	default:
		logger.Debugf(ctx, "the queue is full, dropping the reset request")
	}
}

// Chan returns the channel the requests are delivered to.
func (q *Queue) Chan() <-chan struct{} {
	return q.c
}

// ServeHandler invokes handler for every posted request until the context
// is cancelled or the queue is closed.
func (q *Queue) ServeHandler(
	ctx context.Context,
	handler func(context.Context),
) {
	logger.Tracef(ctx, "ServeHandler")
	defer func() { logger.Tracef(ctx, "/ServeHandler") }()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.CloseChan():
			return
		case <-q.c:
			handler(ctx)
		}
	}
}

// StartHandler runs ServeHandler in a background goroutine.
func (q *Queue) StartHandler(
	ctx context.Context,
	handler func(context.Context),
) {
	observability.Go(ctx, func(ctx context.Context) {
		q.ServeHandler(ctx, handler)
	})
}

// Package events provides the process-wide signaling used to request
// corrective actions on a video stream.
package events

import (
	"context"
	"fmt"
)

// ResetRequester is the capability to ask whoever owns the stream to
// restart it. Posting a request is fire-and-forget: delivery and handling
// are entirely the receiver's responsibility.
type ResetRequester interface {
	fmt.Stringer

	// RequestReset must be non-blocking and safe to invoke from the
	// frame-processing goroutine.
	RequestReset(ctx context.Context)
}

// ResetRequestFunc adapts a plain function to a ResetRequester.
type ResetRequestFunc func(ctx context.Context)

var _ ResetRequester = (ResetRequestFunc)(nil)

func (fn ResetRequestFunc) String() string {
	return fmt.Sprintf("<custom_function:%p>", fn)
}

func (fn ResetRequestFunc) RequestReset(ctx context.Context) {
	fn(ctx)
}

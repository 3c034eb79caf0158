// Package sink defines the contract for pluggable consumers of decoded
// video frames.
package sink

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/blackframe/frame"
)

// StreamParams describes the decoded video stream a sink is being attached to.
type StreamParams struct {
	Width       int
	Height      int
	PixelFormat astiav.PixelFormat
	TimeBase    astiav.Rational
}

// FrameSink is a consumer of decoded frames.
//
// The producer calls Open once before the first frame, Push once per
// decoded frame in arrival order, and Close exactly once at stream end.
// Push does not transfer the ownership of the frame memory: the sink must
// not keep references to the frame after returning, and must not mutate it.
type FrameSink interface {
	fmt.Stringer

	Open(ctx context.Context, params StreamParams) error

	// Push reports whether the frame was accepted. A false return means
	// the sink is in a state where it cannot consume frames anymore and
	// the producer should stop the stream.
	Push(ctx context.Context, input frame.Input) bool

	Close(ctx context.Context) error
}

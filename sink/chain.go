// chain.go implements a fan-out to multiple frame sinks.

package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/logger"
)

// Chain broadcasts every frame to multiple sinks.
//
// All children are opened in order; a frame is accepted only if every
// child accepts it.
type Chain []FrameSink

var _ FrameSink = (Chain)(nil)

func (s Chain) String() string {
	var result []string
	for _, item := range s {
		result = append(result, item.String())
	}
	return fmt.Sprintf("Chain(%s)", strings.Join(result, ","))
}

func (s Chain) Open(
	ctx context.Context,
	params StreamParams,
) (_err error) {
	logger.Tracef(ctx, "Open")
	defer func() { logger.Tracef(ctx, "/Open: %v", _err) }()
	for idx, item := range s {
		if err := item.Open(ctx, params); err != nil {
			for _, opened := range s[:idx] {
				if closeErr := opened.Close(ctx); closeErr != nil {
					logger.Errorf(ctx, "unable to close '%s': %v", opened, closeErr)
				}
			}
			return fmt.Errorf("unable to open '%s': %w", item, err)
		}
	}
	return nil
}

func (s Chain) Push(
	ctx context.Context,
	input frame.Input,
) (_accepted bool) {
	logger.Tracef(ctx, "Push")
	defer func() { logger.Tracef(ctx, "/Push: %v", _accepted) }()
	accepted := true
	for _, item := range s {
		if !item.Push(ctx, input) {
			accepted = false
		}
	}
	return accepted
}

func (s Chain) Close(
	ctx context.Context,
) (_err error) {
	logger.Tracef(ctx, "Close")
	defer func() { logger.Tracef(ctx, "/Close: %v", _err) }()
	var errs []error
	for _, item := range s {
		if err := item.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("unable to close '%s': %w", item, err))
		}
	}
	return errors.Join(errs...)
}

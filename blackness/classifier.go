// Package blackness classifies decoded video frames as black or non-black
// by their average sample level.
package blackness

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/logger"
)

// DefaultThreshold is the average sample level (on the 8-bit 0..255 scale)
// below which a frame counts as black. The value is empirically tuned.
const DefaultThreshold = 30.0

// Classifier decides whether a frame is black under a brightness threshold.
//
// It samples the luma plane of planar/semi-planar YUV layouts, or every
// channel byte of packed 3-channel layouts. Frames in any other pixel
// format are never classified as black.
type Classifier struct {
	Threshold float64
}

// NewClassifier returns a classifier with the given threshold. A zero
// threshold selects DefaultThreshold; a negative threshold is kept as-is
// and effectively disables black classification (the mean sample level is
// never negative).
func NewClassifier(threshold float64) *Classifier {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		Threshold: threshold,
	}
}

func (c *Classifier) String() string {
	return fmt.Sprintf("BlacknessClassifier(Threshold=%v)", c.Threshold)
}

// IsBlack reports whether the frame's average sample level is below the
// threshold. Unsupported pixel formats deterministically result in false.
func (c *Classifier) IsBlack(
	ctx context.Context,
	input frame.Input,
) bool {
	level, ok := c.MeanLevel(ctx, input)
	if !ok {
		return false
	}
	return level < c.Threshold
}

// MeanLevel returns the arithmetic mean sample value of the frame and
// whether the frame was classifiable at all (supported pixel format and
// sane geometry).
func (c *Classifier) MeanLevel(
	ctx context.Context,
	input frame.Input,
) (_level float64, _ok bool) {
	logger.Tracef(ctx, "MeanLevel")
	defer func() { logger.Tracef(ctx, "/MeanLevel: %v %t", _level, _ok) }()

	f := input.Frame
	if f == nil {
		return 0, false
	}

	width, height := f.Width(), f.Height()
	if width < 1 || height < 1 {
		return 0, false
	}

	pixFmt := f.PixelFormat()
	var rowBytes int
	switch pixFmt {
	case astiav.PixelFormatYuv420P,
		astiav.PixelFormatYuvj420P,
		astiav.PixelFormatNv12,
		astiav.PixelFormatNv21:
		// the luma plane alone: width samples per row
		rowBytes = width
	case astiav.PixelFormatRgb24,
		astiav.PixelFormatBgr24:
		// all three channel bytes per pixel
		rowBytes = width * 3
	default:
		logger.Debugf(ctx, "unsupported pixel format for blackness classification: %s", pixFmt)
		return 0, false
	}

	linesize := f.Linesize()[0]
	data, err := f.Data().Bytes(0)
	if err != nil {
		logger.Debugf(ctx, "unable to access the data of the frame: %v", err)
		return 0, false
	}

	return meanOverPlane(data, linesize, rowBytes, height)
}

// meanOverPlane computes the mean of the first rowBytes bytes of each of
// the height rows, with rows spaced linesize bytes apart. The padding
// between rowBytes and linesize is never sampled.
func meanOverPlane(
	data []byte,
	linesize int,
	rowBytes int,
	height int,
) (float64, bool) {
	if linesize < rowBytes {
		return 0, false
	}
	if len(data) < (height-1)*linesize+rowBytes {
		return 0, false
	}

	var sum uint64
	for y := 0; y < height; y++ {
		row := data[y*linesize : y*linesize+rowBytes]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(rowBytes*height), true
}

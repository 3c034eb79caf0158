// Package frame provides types and utilities for handling decoded video frames.
package frame

import (
	"time"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/blackframe/avconv"
)

// Input is a decoded frame together with the information about the stream
// it was decoded from. The frame memory is owned by the producer; consumers
// must not mutate it.
type Input struct {
	*astiav.Frame
	StreamInfo *StreamInfo
}

func BuildInput(
	f *astiav.Frame,
	streamInfo *StreamInfo,
) Input {
	return Input{
		Frame:      f,
		StreamInfo: streamInfo,
	}
}

func (f *Input) GetStreamIndex() int {
	if f.StreamInfo == nil {
		return 0
	}
	return f.StreamInfo.GetStreamIndex()
}

func (f *Input) GetTimeBase() astiav.Rational {
	if f.StreamInfo == nil {
		return astiav.NewRational(0, 1)
	}
	return f.StreamInfo.GetTimeBase()
}

func (f *Input) GetPTS() int64 {
	if f.Frame == nil {
		return astiav.NoPtsValue
	}
	return f.Frame.Pts()
}

func (f *Input) GetPTSAsDuration() time.Duration {
	return avconv.Duration(f.GetPTS(), f.GetTimeBase())
}

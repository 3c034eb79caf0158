// statistics.go provides the externally readable counters of the detector.

package blackframe

import (
	"sync/atomic"
)

// Statistics is a snapshot of the detector counters.
type Statistics struct {
	FramesProcessed    uint64
	FramesBlack        uint64 `json:",omitempty"`
	BlinkEpisodes      uint64 `json:",omitempty"`
	ScreenOffsDetected uint64 `json:",omitempty"`
	ResetsRequested    uint64 `json:",omitempty"`
}

type counters struct {
	FramesProcessed    atomic.Uint64
	FramesBlack        atomic.Uint64
	BlinkEpisodes      atomic.Uint64
	ScreenOffsDetected atomic.Uint64
	ResetsRequested    atomic.Uint64
}

func (c *counters) ToStats() Statistics {
	return Statistics{
		FramesProcessed:    c.FramesProcessed.Load(),
		FramesBlack:        c.FramesBlack.Load(),
		BlinkEpisodes:      c.BlinkEpisodes.Load(),
		ScreenOffsDetected: c.ScreenOffsDetected.Load(),
		ResetsRequested:    c.ResetsRequested.Load(),
	}
}

func (c *counters) reset() {
	c.FramesProcessed.Store(0)
	c.FramesBlack.Store(0)
	c.BlinkEpisodes.Store(0)
	c.ScreenOffsDetected.Store(0)
	c.ResetsRequested.Store(0)
}

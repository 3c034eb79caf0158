// Package blackframe implements a streaming black-frame detector for
// decoded-video pipelines.
//
// The detector attaches downstream of a frame source as a terminal
// sink.FrameSink. Every pushed frame is classified as black or non-black
// by its average sample level, and a small episodic state machine
// distinguishes a recurring capture glitch (repeated short black bursts)
// from a genuine screen-off (one long black run) or isolated noise. When
// the glitch pattern is recognized, a stream-reset request is posted to
// the injected events.ResetRequester.
package blackframe

import (
	"context"

	"github.com/xaionaro-go/blackframe/events"
	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/frame/condition"
	"github.com/xaionaro-go/blackframe/helpers/closuresignaler"
	"github.com/xaionaro-go/blackframe/logger"
	"github.com/xaionaro-go/blackframe/sink"
	"github.com/xaionaro-go/xsync"
)

// Detector is a stateful per-frame classifier. It never rejects, buffers
// or mutates frames, and never fails the pipeline: the only externally
// visible effect is an occasional reset request.
//
// It is designed for a single producer goroutine calling Push
// sequentially; the locker only guards against concurrent readers of the
// state (Open/GetStats from other goroutines).
type Detector struct {
	*closuresignaler.ClosureSignaler
	Config Config

	// IsBlackCondition decides whether a frame is black. It defaults to
	// condition.IsBlack with Config.BlackLevelThreshold.
	IsBlackCondition condition.Condition

	// ResetRequester receives the fire-and-forget stream-reset requests.
	ResetRequester events.ResetRequester

	Locker xsync.Mutex

	currentBlackRun        int
	recentEpisodes         int
	framesSinceLastEpisode int

	counters counters
}

var _ sink.FrameSink = (*Detector)(nil)

func New(
	cfg *Config,
	resetRequester events.ResetRequester,
) *Detector {
	if cfg == nil {
		cfg = ptr(DefaultConfig())
	}
	return &Detector{
		ClosureSignaler:  closuresignaler.New(),
		Config:           *cfg,
		IsBlackCondition: condition.NewIsBlack(cfg.BlackLevelThreshold),
		ResetRequester:   resetRequester,
	}
}

func (d *Detector) String() string {
	return "BlackFrameDetector"
}

// Open implements sink.FrameSink. It always succeeds; it only resets the
// detector state (there is no persistence across stream restarts).
func (d *Detector) Open(
	ctx context.Context,
	params sink.StreamParams,
) (_err error) {
	logger.Tracef(ctx, "Open")
	defer func() { logger.Tracef(ctx, "/Open: %v", _err) }()
	logger.Debugf(ctx, "attaching to a %dx%d (%s) stream", params.Width, params.Height, params.PixelFormat)
	d.Locker.Do(ctx, func() {
		d.currentBlackRun = 0
		d.recentEpisodes = 0
		d.framesSinceLastEpisode = 0
		d.counters.reset()
	})
	return nil
}

// Push implements sink.FrameSink. It always accepts the frame: the
// detector is purely observational and must not stall or drop the
// pipeline, so there is no failure path here.
func (d *Detector) Push(
	ctx context.Context,
	input frame.Input,
) bool {
	logger.Tracef(ctx, "Push: stream:%d pts:%v", input.GetStreamIndex(), input.GetPTSAsDuration())
	defer func() { logger.Tracef(ctx, "/Push") }()

	// classification is a pure function of the frame contents, no need
	// to hold the lock for it
	isBlack := d.IsBlackCondition.Match(ctx, input)

	d.Locker.Do(ctx, func() {
		d.observeLocked(ctx, input, isBlack)
	})
	return true
}

func (d *Detector) observeLocked(
	ctx context.Context,
	input frame.Input,
	isBlack bool,
) {
	cfg := &d.Config
	d.counters.FramesProcessed.Add(1)
	d.framesSinceLastEpisode++

	switch {
	case isBlack:
		d.currentBlackRun++
		d.counters.FramesBlack.Add(1)
		logger.Debugf(ctx, "black frame detected, %d in the current run", d.currentBlackRun)
		if d.currentBlackRun > cfg.ScreenOffRunCeiling {
			// not a glitch: the screen is genuinely off, which is not an
			// error condition for this detector
			logger.Debugf(ctx, "too many consecutive black frames (%d), assuming the screen is off", d.currentBlackRun)
			d.currentBlackRun = 0
			d.recentEpisodes = 0
			d.counters.ScreenOffsDetected.Add(1)
		}
	case d.currentBlackRun > 0:
		runLength := d.currentBlackRun
		d.currentBlackRun = 0
		logger.Debugf(ctx, "the black run ended after %d frames", runLength)
		if runLength >= cfg.BlinkRunMin && runLength <= cfg.BlinkRunMax {
			d.recentEpisodes++
			d.framesSinceLastEpisode = 0
			d.counters.BlinkEpisodes.Add(1)
			logger.Infof(ctx, "blink episode detected at %v, %d recently", input.GetPTSAsDuration(), d.recentEpisodes)
			if d.recentEpisodes >= cfg.EpisodeRepetitionThreshold {
				logger.Warnf(ctx, "%d blink episodes in a short period, requesting a stream reset at %v", d.recentEpisodes, input.GetPTSAsDuration())
				d.recentEpisodes = 0
				d.counters.ResetsRequested.Add(1)
				if d.ResetRequester != nil {
					d.ResetRequester.RequestReset(ctx)
				}
			}
		}
	}

	if d.framesSinceLastEpisode > cfg.EpisodeIdleWindow {
		if d.recentEpisodes > 0 {
			logger.Debugf(ctx, "no new blink episodes within the window, forgetting the %d accumulated", d.recentEpisodes)
		}
		d.recentEpisodes = 0
		d.framesSinceLastEpisode = 0
	}
}

// Close implements sink.FrameSink. The detector owns no frame memory,
// so there is nothing to release.
func (d *Detector) Close(
	ctx context.Context,
) (_err error) {
	logger.Tracef(ctx, "Close")
	defer func() { logger.Tracef(ctx, "/Close: %v", _err) }()
	d.ClosureSignaler.Close(ctx)
	return nil
}

// GetStats returns a snapshot of the detector counters.
func (d *Detector) GetStats() Statistics {
	return d.counters.ToStats()
}

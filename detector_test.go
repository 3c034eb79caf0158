package blackframe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/blackframe/events"
	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/frame/condition"
	"github.com/xaionaro-go/blackframe/sink"
)

type detectorHarness struct {
	Detector   *Detector
	ResetCount int

	isBlack bool
}

// newDetectorHarness returns a detector whose blackness classification is
// scripted instead of being computed from pixels, plus a counter of the
// emitted reset requests.
func newDetectorHarness(cfg *Config) *detectorHarness {
	h := &detectorHarness{}
	h.Detector = New(cfg, events.ResetRequestFunc(func(ctx context.Context) {
		h.ResetCount++
	}))
	h.Detector.IsBlackCondition = condition.Function(func(context.Context, frame.Input) bool {
		return h.isBlack
	})
	return h
}

func (h *detectorHarness) push(t *testing.T, isBlack bool, n int) {
	ctx := context.Background()
	h.isBlack = isBlack
	for i := 0; i < n; i++ {
		require.True(t, h.Detector.Push(ctx, frame.Input{}))
	}
}

func TestDetectorBlinkEpisodesTriggerReset(t *testing.T) {
	h := newDetectorHarness(nil)

	// two qualifying runs are not enough
	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	require.Equal(t, 0, h.ResetCount)

	// the signal fires exactly on the completion of the third run
	h.push(t, true, 3)
	require.Equal(t, 0, h.ResetCount)
	h.push(t, false, 1)
	require.Equal(t, 1, h.ResetCount)

	stats := h.Detector.GetStats()
	require.Equal(t, uint64(3), stats.BlinkEpisodes)
	require.Equal(t, uint64(1), stats.ResetsRequested)
}

func TestDetectorDebounceAfterReset(t *testing.T) {
	h := newDetectorHarness(nil)

	for i := 0; i < 3; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	require.Equal(t, 1, h.ResetCount)

	// the episode counter started from zero again: two more qualifying
	// runs must not re-trigger, the third one must
	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	require.Equal(t, 1, h.ResetCount)
	h.push(t, true, 3)
	h.push(t, false, 1)
	require.Equal(t, 2, h.ResetCount)
}

func TestDetectorBlinkBand(t *testing.T) {
	tests := []struct {
		name            string
		runLength       int
		expectedEpisode bool
	}{
		{name: "too short to be a blink", runLength: 1, expectedEpisode: false},
		{name: "lower bound of the band", runLength: 2, expectedEpisode: true},
		{name: "middle of the band", runLength: 3, expectedEpisode: true},
		{name: "upper bound of the band", runLength: 5, expectedEpisode: true},
		{name: "too long to be a blink", runLength: 6, expectedEpisode: false},
		{name: "boundary at the screen-off ceiling", runLength: 10, expectedEpisode: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newDetectorHarness(nil)
			h.push(t, true, tt.runLength)
			h.push(t, false, 1)
			stats := h.Detector.GetStats()
			if tt.expectedEpisode {
				require.Equal(t, uint64(1), stats.BlinkEpisodes)
			} else {
				require.Equal(t, uint64(0), stats.BlinkEpisodes)
			}
			require.Equal(t, 0, h.ResetCount)
		})
	}
}

func TestDetectorScreenOffIsNotAGlitch(t *testing.T) {
	h := newDetectorHarness(nil)

	// a run of 11 consecutive black frames trips the ceiling mid-stream:
	// the run counter is reset and the run never completes as a blink
	h.push(t, true, 11)
	stats := h.Detector.GetStats()
	require.Equal(t, uint64(1), stats.ScreenOffsDetected)
	h.push(t, false, 1)
	stats = h.Detector.GetStats()
	require.Equal(t, uint64(0), stats.BlinkEpisodes)
	require.Equal(t, 0, h.ResetCount)

	// a screen-off also forgets the episodes accumulated so far
	h = newDetectorHarness(nil)
	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	h.push(t, true, 11)
	h.push(t, false, 1)
	h.push(t, true, 3)
	h.push(t, false, 1)
	require.Equal(t, 0, h.ResetCount)
}

func TestDetectorIdleWindowAgesOutEpisodes(t *testing.T) {
	h := newDetectorHarness(nil)

	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}

	// more than 300 frames without a new qualifying episode: the two
	// accumulated episodes are silently forgotten
	h.push(t, false, 301)

	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	require.Equal(t, 0, h.ResetCount)
	h.push(t, true, 3)
	h.push(t, false, 1)
	require.Equal(t, 1, h.ResetCount)
}

func TestDetectorIsolatedShortRunIsNoise(t *testing.T) {
	h := newDetectorHarness(nil)
	h.push(t, false, 100)
	h.push(t, true, 3)
	h.push(t, false, 100)
	require.Equal(t, 0, h.ResetCount)
	stats := h.Detector.GetStats()
	require.Equal(t, uint64(1), stats.BlinkEpisodes)
	require.Equal(t, uint64(203), stats.FramesProcessed)
}

func TestDetectorOpenResetsState(t *testing.T) {
	ctx := context.Background()
	h := newDetectorHarness(nil)

	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}

	require.NoError(t, h.Detector.Open(ctx, sink.StreamParams{Width: 2, Height: 2}))
	require.Equal(t, uint64(0), h.Detector.GetStats().FramesProcessed)

	for i := 0; i < 2; i++ {
		h.push(t, true, 3)
		h.push(t, false, 1)
	}
	require.Equal(t, 0, h.ResetCount)
	h.push(t, true, 3)
	h.push(t, false, 1)
	require.Equal(t, 1, h.ResetCount)
}

func TestDetectorLifecycle(t *testing.T) {
	ctx := context.Background()
	d := New(nil, nil)
	require.NoError(t, d.Open(ctx, sink.StreamParams{}))
	require.False(t, d.IsClosed())
	require.NoError(t, d.Close(ctx))
	require.True(t, d.IsClosed())
}

func TestDetectorCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EpisodeRepetitionThreshold = 1
	h := newDetectorHarness(&cfg)

	h.push(t, true, 2)
	h.push(t, false, 1)
	require.Equal(t, 1, h.ResetCount)
}

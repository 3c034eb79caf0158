// config.go defines the tunables of the black-frame detector.

package blackframe

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/blackframe/blackness"
)

type Config struct {
	// BlackLevelThreshold is the average sample level below which a frame
	// counts as black (8-bit scale).
	BlackLevelThreshold float64

	// ScreenOffRunCeiling is the number of consecutive black frames above
	// which a run is treated as a genuine screen-off instead of a glitch.
	ScreenOffRunCeiling int

	// BlinkRunMin and BlinkRunMax bound (inclusively) the length of a
	// completed black run that counts as a blink episode.
	BlinkRunMin int
	BlinkRunMax int

	// EpisodeRepetitionThreshold is the number of blink episodes within
	// the idle window that triggers a stream-reset request.
	EpisodeRepetitionThreshold int

	// EpisodeIdleWindow is the number of frames without a new blink
	// episode after which the accumulated episodes are forgotten
	// (~10 seconds at 30 fps with the default value).
	EpisodeIdleWindow int
}

func (cfg *Config) String() string {
	if cfg == nil {
		return "<nil>"
	}
	return spew.Sdump(*cfg)
}

func DefaultConfig() Config {
	return Config{
		BlackLevelThreshold:        blackness.DefaultThreshold,
		ScreenOffRunCeiling:        10,
		BlinkRunMin:                2,
		BlinkRunMax:                5,
		EpisodeRepetitionThreshold: 3,
		EpisodeIdleWindow:          300,
	}
}

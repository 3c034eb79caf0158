package frame

import (
	"math"
	"testing"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
)

func TestInputAccessors(t *testing.T) {
	t.Run("without stream info", func(t *testing.T) {
		f := Input{}
		require.Equal(t, 0, f.GetStreamIndex())
		require.Equal(t, astiav.NewRational(0, 1), f.GetTimeBase())
		require.Equal(t, int64(astiav.NoPtsValue), f.GetPTS())
		// no PTS converts to the sentinel, not to a panic
		require.Equal(t, time.Duration(math.MinInt64), f.GetPTSAsDuration())
	})

	t.Run("with stream info fallbacks", func(t *testing.T) {
		f := BuildInput(nil, &StreamInfo{
			StreamIndex: 3,
			TimeBase:    astiav.NewRational(1, 1000),
		})
		require.Equal(t, 3, f.GetStreamIndex())
		require.Equal(t, astiav.NewRational(1, 1000), f.GetTimeBase())
	})
}

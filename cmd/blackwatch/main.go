// Command blackwatch decodes a video input, watches it for black-frame
// glitch patterns and reopens the input whenever the detector requests a
// stream reset.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/blackframe"
	"github.com/xaionaro-go/blackframe/events"
	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/logger"
	"github.com/xaionaro-go/blackframe/sink"
	"github.com/xaionaro-go/observability"
)

var errResetRequested = errors.New("stream reset requested")

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s <URL>\n", os.Args[0])
	}

	defaultCfg := blackframe.DefaultConfig()
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	blackLevelThreshold := pflag.Float64("black-level-threshold", defaultCfg.BlackLevelThreshold, "average sample level below which a frame counts as black")
	screenOffRunCeiling := pflag.Int("screen-off-run-ceiling", defaultCfg.ScreenOffRunCeiling, "consecutive black frames above which the screen is assumed to be off")
	blinkRunMin := pflag.Int("blink-run-min", defaultCfg.BlinkRunMin, "minimal length of a black run counted as a blink episode")
	blinkRunMax := pflag.Int("blink-run-max", defaultCfg.BlinkRunMax, "maximal length of a black run counted as a blink episode")
	episodeRepetitionThreshold := pflag.Int("episode-repetition-threshold", defaultCfg.EpisodeRepetitionThreshold, "number of blink episodes that triggers a stream reset")
	episodeIdleWindow := pflag.Int("episode-idle-window", defaultCfg.EpisodeIdleWindow, "number of frames without new blink episodes after which the accumulated episodes are forgotten")
	pflag.Parse()
	if len(pflag.Args()) != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	astiav.SetLogLevel(logger.LogLevelToAstiav(l.Level()))
	astiav.SetLogCallback(func(c astiav.Classer, level astiav.LogLevel, fmt, msg string) {
		var cs string
		if c != nil {
			if cl := c.Class(); cl != nil {
				cs = " - class: " + cl.String()
			}
		}
		l.Logf(
			logger.LogLevelFromAstiav(level),
			"%s%s",
			strings.TrimSpace(msg), cs,
		)
	})

	fromURL := pflag.Arg(0)

	cfg := blackframe.Config{
		BlackLevelThreshold:        *blackLevelThreshold,
		ScreenOffRunCeiling:        *screenOffRunCeiling,
		BlinkRunMin:                *blinkRunMin,
		BlinkRunMax:                *blinkRunMax,
		EpisodeRepetitionThreshold: *episodeRepetitionThreshold,
		EpisodeIdleWindow:          *episodeIdleWindow,
	}

	queue := events.NewQueue(0)
	detector := blackframe.New(&cfg, queue)
	sinks := sink.Chain{detector}

	observability.Go(ctx, func(ctx context.Context) {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				stats := detector.GetStats()
				statsJSON, err := json.Marshal(stats)
				if err != nil {
					l.Fatal(err)
				}
				fmt.Printf("%s frames: %s\n", humanize.Comma(int64(stats.FramesProcessed)), statsJSON)
			}
		}
	})

	for {
		err := watch(ctx, fromURL, sinks, queue.Chan())
		switch {
		case err == nil:
			l.Infof("'%s': end of stream", fromURL)
			return
		case errors.Is(err, errResetRequested):
			l.Infof("reset requested, reopening '%s'...", fromURL)
		case errors.Is(err, context.Canceled):
			return
		default:
			l.Fatal(err)
		}
	}
}

// watch decodes the video stream of fromURL and pushes every frame into
// sinks, until the end of the stream, a cancellation, or a reset request.
func watch(
	ctx context.Context,
	fromURL string,
	sinks sink.FrameSink,
	resetCh <-chan struct{},
) (_err error) {
	logger.Debugf(ctx, "opening '%s' as the input...", fromURL)
	fmtCtx := astiav.AllocFormatContext()
	if fmtCtx == nil {
		return fmt.Errorf("unable to allocate a format context")
	}
	defer fmtCtx.Free()

	if err := fmtCtx.OpenInput(fromURL, nil, nil); err != nil {
		return fmt.Errorf("unable to open '%s': %w", fromURL, err)
	}
	defer fmtCtx.CloseInput()

	if err := fmtCtx.FindStreamInfo(nil); err != nil {
		return fmt.Errorf("unable to get the stream info of '%s': %w", fromURL, err)
	}

	var stream *astiav.Stream
	for _, s := range fmtCtx.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			stream = s
			break
		}
	}
	if stream == nil {
		return fmt.Errorf("no video stream in '%s'", fromURL)
	}

	codec := astiav.FindDecoder(stream.CodecParameters().CodecID())
	if codec == nil {
		return fmt.Errorf("unable to find a decoder for %s", stream.CodecParameters().CodecID())
	}
	codecCtx := astiav.AllocCodecContext(codec)
	if codecCtx == nil {
		return fmt.Errorf("unable to allocate a codec context")
	}
	defer codecCtx.Free()
	if err := stream.CodecParameters().ToCodecContext(codecCtx); err != nil {
		return fmt.Errorf("unable to initialize the codec context: %w", err)
	}
	if err := codecCtx.Open(codec, nil); err != nil {
		return fmt.Errorf("unable to open the decoder: %w", err)
	}

	if err := sinks.Open(ctx, sink.StreamParams{
		Width:       stream.CodecParameters().Width(),
		Height:      stream.CodecParameters().Height(),
		PixelFormat: stream.CodecParameters().PixelFormat(),
		TimeBase:    stream.TimeBase(),
	}); err != nil {
		return fmt.Errorf("unable to open the sinks: %w", err)
	}
	defer func() {
		if err := sinks.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close the sinks: %v", err)
		}
	}()

	si := &frame.StreamInfo{Stream: stream}
	pkt := astiav.AllocPacket()
	defer pkt.Free()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-resetCh:
			return errResetRequested
		default:
		}

		err := fmtCtx.ReadFrame(pkt)
		if err != nil {
			if err == astiav.ErrEof {
				return nil
			}
			return fmt.Errorf("unable to read a packet from '%s': %w", fromURL, err)
		}
		if pkt.StreamIndex() != stream.Index() {
			pkt.Unref()
			continue
		}
		err = codecCtx.SendPacket(pkt)
		pkt.Unref()
		if err != nil {
			return fmt.Errorf("unable to send the packet to the decoder: %w", err)
		}

		for {
			f := frame.Pool.Get()
			err := codecCtx.ReceiveFrame(f)
			if err != nil {
				frame.Pool.Put(f)
				if err == astiav.ErrEagain || err == astiav.ErrEof {
					break
				}
				return fmt.Errorf("unable to receive a frame from the decoder: %w", err)
			}
			sinks.Push(ctx, frame.BuildInput(f, si))
			frame.Pool.Put(f)
		}
	}
}

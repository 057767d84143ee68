package engine

import (
	"context"
	"errors"
	"log"
	"time"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/kbinani/screenshot"

	"scan-overlay/src/geometry"
	"scan-overlay/src/symbology"
)

// ScreenSource is a reference engine that treats a display as the live
// feed: it grabs frames on a fixed interval, decodes them on the worker
// pool, and reports results through the Listener. Decode callbacks are
// marshaled onto the Run goroutine before they reach the listener, so the
// listener only ever hears from one goroutine.
type ScreenSource struct {
	listener Listener
	pool     *Pool
	display  int
	interval time.Duration

	results chan decodeOutcome
}

type decodeOutcome struct {
	result *zxinggo.Result
	err    error
}

// NewScreenSource creates a source for the given display. interval <= 0
// defaults to 500ms.
func NewScreenSource(listener Listener, display int, interval time.Duration) *ScreenSource {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &ScreenSource{
		listener: listener,
		pool:     NewPool(0),
		display:  display,
		interval: interval,
		results:  make(chan decodeOutcome, 1),
	}
}

// Run captures and decodes until ctx is cancelled. It blocks.
func (s *ScreenSource) Run(ctx context.Context) error {
	if screenshot.NumActiveDisplays() <= s.display {
		return errors.New("display not available")
	}
	defer s.pool.Close()

	bounds := screenshot.GetDisplayBounds(s.display)
	orientation := orientationOf(bounds.Dx(), bounds.Dy())
	s.listener.OrientationChanged(orientation)
	s.listener.EngineReady()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.captureFrame(ctx, &orientation)
		case out := <-s.results:
			s.handleOutcome(out)
		}
	}
}

func (s *ScreenSource) captureFrame(ctx context.Context, orientation *geometry.Orientation) {
	bounds := screenshot.GetDisplayBounds(s.display)
	if o := orientationOf(bounds.Dx(), bounds.Dy()); o != *orientation {
		*orientation = o
		s.listener.OrientationChanged(o)
	}

	frame, err := screenshot.CaptureRect(bounds)
	if err != nil {
		log.Printf("Engine: capture failed: %v", err)
		return
	}

	submitted := s.pool.Submit(ctx, frame, func(result *zxinggo.Result, err error) {
		select {
		case s.results <- decodeOutcome{result: result, err: err}:
		default:
			// A result is already pending; this one is stale.
		}
	})
	if !submitted {
		// Decode in flight; skip this frame.
		return
	}
}

func (s *ScreenSource) handleOutcome(out decodeOutcome) {
	if out.err != nil {
		// Most frames contain no barcode; that is not worth logging.
		if !errors.Is(out.err, zxinggo.ErrNotFound) && !errors.Is(out.err, context.Canceled) {
			log.Printf("Engine: decode failed: %v", out.err)
		}
		return
	}

	sym, ok := symbology.FromFormat(out.result.Format)
	if !ok {
		log.Printf("Engine: dropping result with unsupported format %s", out.result.Format)
		return
	}
	s.listener.DecodeResult(out.result.Text, sym.String())
}

func orientationOf(w, h int) geometry.Orientation {
	if w > h {
		return geometry.Landscape
	}
	return geometry.Portrait
}

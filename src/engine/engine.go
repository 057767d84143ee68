// Package engine is the boundary to the capture/decode engine. The
// overlay core only ever sees the Listener callbacks; everything else in
// this package is a reference source implementation for hosts without
// their own engine.
package engine

import (
	"context"
	"image"
	"log"
	"runtime"
	"sync"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/binarizer"
	_ "github.com/ericlevine/zxinggo/datamatrix"
	_ "github.com/ericlevine/zxinggo/oned"
	_ "github.com/ericlevine/zxinggo/pdf417"
	_ "github.com/ericlevine/zxinggo/qrcode"

	"scan-overlay/src/geometry"
)

// Listener receives engine callbacks. The overlay Coordinator satisfies
// it. Calls may originate from engine goroutines; implementations must
// serialize internally or be driven through a single control goroutine.
type Listener interface {
	DecodeResult(text, symbology string)
	EngineReady()
	OrientationChanged(o geometry.Orientation)
}

// DecodeCallback is invoked on decode completion (from a worker
// goroutine). Pass a closure that posts back into the control loop.
type DecodeCallback func(result *zxinggo.Result, err error)

// Pool is a fixed-size decode worker pool with a 1-slot input queue:
// frames arriving while a decode is in flight are dropped rather than
// queued, so a slow decode never builds a backlog of stale frames.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx   context.Context
	frame image.Image
	cb    DecodeCallback
}

// NewPool creates a decode pool. Size defaults to NumCPU when size<=0.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				result, err := decodeFrame(j.ctx, j.frame)
				j.cb(result, err)
			}
		}()
	}
}

// Submit enqueues a frame if the single-slot queue is free. Returns false
// if the frame was dropped.
func (p *Pool) Submit(ctx context.Context, frame image.Image, cb DecodeCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, frame: frame, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

// decodeFrame runs the multi-format reader with the context deadline
// honored: decoding continues in its goroutine but the result is
// abandoned once ctx is done.
func decodeFrame(ctx context.Context, frame image.Image) (*zxinggo.Result, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	resCh := make(chan struct {
		result *zxinggo.Result
		err    error
	}, 1)
	go func() {
		source := zxinggo.NewImageLuminanceSource(frame)
		bitmap := zxinggo.NewBinaryBitmap(binarizer.NewHybrid(source))
		result, err := zxinggo.Decode(bitmap, &zxinggo.DecodeOptions{TryHarder: true})
		resCh <- struct {
			result *zxinggo.Result
			err    error
		}{result, err}
	}()
	select {
	case r := <-resCh:
		return r.result, r.err
	case <-ctx.Done():
		log.Printf("Engine: decode abandoned: %v", ctx.Err())
		return nil, ctx.Err()
	}
}

package frameloop

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultFPS is the frame rate the icon speeds are tuned for.
const DefaultFPS = 60.0

// ErrFrameLimit is returned by Run when the frame cap is hit while
// callbacks are still queued.
var ErrFrameLimit = errors.New("frame limit reached")

// Paced runs queued frame callbacks on the calling goroutine at a fixed rate.
type Paced struct {
	*Manual
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// PacedOption configures a Paced loop.
type PacedOption func(*Paced)

// WithLogger sets the loop logger.
func WithLogger(l *zap.SugaredLogger) PacedOption {
	return func(p *Paced) {
		p.log = l
	}
}

// NewPaced returns a loop delivering at most fps frames per second.
// Non-positive fps falls back to DefaultFPS.
func NewPaced(fps float64, opts ...PacedOption) *Paced {
	if fps <= 0 {
		fps = DefaultFPS
	}
	p := &Paced{
		Manual:  NewManual(),
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run steps frames until the queue drains, maxFrames have run (maxFrames <= 0
// means unlimited), or ctx is done. It returns the number of frames run.
func (p *Paced) Run(ctx context.Context, maxFrames int) (int, error) {
	frames := 0
	for p.Pending() > 0 {
		if maxFrames > 0 && frames >= maxFrames {
			p.log.Debugw("frame limit reached", "frames", frames, "pending", p.Pending())
			return frames, ErrFrameLimit
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return frames, fmt.Errorf("waiting for frame %d: %w", frames, err)
		}
		p.Step()
		frames++
	}

	p.log.Debugw("frame loop idle", "frames", frames)
	return frames, nil
}

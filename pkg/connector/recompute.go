package connector

import (
	"context"
	"time"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Scene is everything [Compute] needs, captured at the moment the layout
// changed. Scenes are handed to another goroutine, so Members must not be
// mutated after [Recomputer.Invalidate] and Lookup must be safe to call
// from the recomputer's goroutine.
type Scene struct {
	Members []family.Member
	Lookup  AnchorLookup
	Canvas  Canvas
}

// Recomputer recomputes connector geometry whenever it is told the layout
// changed. Signals arriving faster than recomputation are coalesced and only
// the latest scene is used.
type Recomputer struct {
	publish  func(Result)
	interval time.Duration
	pending  chan Scene
}

// RecomputerOption configures a [Recomputer].
type RecomputerOption func(*Recomputer)

// WithInterval additionally recomputes the most recent scene every d, for
// hosts whose anchors move without an explicit signal. Zero disables it.
func WithInterval(d time.Duration) RecomputerOption {
	return func(r *Recomputer) { r.interval = d }
}

// NewRecomputer returns a recomputer that hands every result to publish.
// publish runs on the goroutine calling [Recomputer.Run].
func NewRecomputer(publish func(Result), opts ...RecomputerOption) *Recomputer {
	r := &Recomputer{
		publish: publish,
		pending: make(chan Scene, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invalidate signals that the layout changed. It never blocks; an
// unprocessed earlier scene is replaced.
func (r *Recomputer) Invalidate(s Scene) {
	for {
		select {
		case r.pending <- s:
			return
		default:
		}
		select {
		case <-r.pending:
		default:
		}
	}
}

// Run processes invalidations until ctx is done and then returns ctx.Err().
// Cancelling ctx is how a view tears the loop down.
func (r *Recomputer) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		tick = t.C
	}

	var (
		last    Scene
		hasLast bool
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-r.pending:
			last, hasLast = s, true
			r.recompute(ctx, s)
		case <-tick:
			if hasLast {
				r.recompute(ctx, last)
			}
		}
	}
}

func (r *Recomputer) recompute(ctx context.Context, s Scene) {
	start := time.Now()
	res := Compute(s.Members, s.Lookup, s.Canvas)
	observability.Layout().OnConnectors(ctx, len(res.Links), res.Skipped, time.Since(start))
	r.publish(res)
}

package connector

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/kintree/pkg/layout"
)

func TestRecomputerPublishesAndTearsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	members := couple()
	frame := layout.Arrange(layout.Build(members), layout.DefaultMetrics())

	results := make(chan Result, 4)
	r := NewRecomputer(func(res Result) { results <- res })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	r.Invalidate(Scene{Members: members, Lookup: frame.Anchor})

	select {
	case res := <-results:
		if len(res.Links) != 3 {
			t.Errorf("got %d links, want 3", len(res.Links))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result published")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestInvalidateCoalesces(t *testing.T) {
	r := NewRecomputer(func(Result) {})

	// Nothing is draining; Invalidate must still never block.
	for i := 0; i < 100; i++ {
		r.Invalidate(Scene{Canvas: Canvas{LogicalWidth: float64(i)}})
	}
	if got := len(r.pending); got != 1 {
		t.Fatalf("pending = %d, want 1", got)
	}
	if s := <-r.pending; s.Canvas.LogicalWidth != 99 {
		t.Errorf("pending scene = %v, want the latest", s.Canvas.LogicalWidth)
	}
}

func TestRecomputerInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	members := couple()
	frame := layout.Arrange(layout.Build(members), layout.DefaultMetrics())

	results := make(chan Result, 16)
	r := NewRecomputer(func(res Result) {
		select {
		case results <- res:
		default:
		}
	}, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()

	r.Invalidate(Scene{Members: members, Lookup: frame.Anchor})
	for i := 0; i < 3; i++ {
		select {
		case <-results:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d results before timeout", i)
		}
	}

	cancel()
	<-done
}

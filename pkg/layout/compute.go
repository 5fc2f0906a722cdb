package layout

import (
	"context"
	"time"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Compute builds and arranges members in one step and reports the pass to
// the registered layout hooks.
func Compute(ctx context.Context, members []family.Member, m Metrics) (Forest, Frame) {
	start := time.Now()
	forest := Build(members)
	frame := Arrange(forest, m)
	observability.Layout().OnLayout(ctx, len(members), len(forest.Placed()), len(forest.Unplaced), time.Since(start))
	return forest, frame
}

package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/observability"
)

// logHooks reports storage and layout events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetStoreHooks(h)
	observability.SetLayoutHooks(h)
}

func (h logHooks) OnLoad(_ context.Context, backend, key string, size int, seeded bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load", "backend", backend, "key", key, "seeded", seeded, "took", d, "err", err)
		return
	}
	h.logger.Debug("load", "backend", backend, "key", key, "bytes", size, "seeded", seeded, "took", d)
}

func (h logHooks) OnSave(_ context.Context, backend, key string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("save failed", "backend", backend, "key", key, "took", d, "err", err)
		return
	}
	h.logger.Debug("save", "backend", backend, "key", key, "bytes", size, "took", d)
}

func (h logHooks) OnLayout(_ context.Context, members, placed, unplaced int, d time.Duration) {
	h.logger.Debug("layout", "members", members, "placed", placed, "unplaced", unplaced, "took", d)
}

func (h logHooks) OnConnectors(_ context.Context, links, skipped int, d time.Duration) {
	h.logger.Debug("connectors", "links", links, "skipped", skipped, "took", d)
}

var (
	_ observability.StoreHooks  = logHooks{}
	_ observability.LayoutHooks = logHooks{}
)

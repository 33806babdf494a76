package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treepage/pkg/observability"
)

// logHooks writes pipeline, store and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnSortStart(_ context.Context, records, page, perPage int) {
	h.logger.Debug("sorting", "records", records, "page", page, "per_page", perPage)
}

func (h *logHooks) OnSortComplete(_ context.Context, emitted, visited int, d time.Duration) {
	h.logger.Debug("sorted", "emitted", emitted, "visited", visited, "duration", d)
}

func (h *logHooks) OnRepair(_ context.Context, id string) {
	h.logger.Debug("cleared self-referencing parent", "id", id)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("rendered", "format", format, "bytes", size, "duration", d)
}

func (h *logHooks) OnLoad(_ context.Context, driver string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("store load failed", "driver", driver, "error", err)
		return
	}
	h.logger.Debug("store load", "driver", driver, "records", count, "duration", d)
}

func (h *logHooks) OnSave(_ context.Context, driver string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("store save failed", "driver", driver, "error", err)
		return
	}
	h.logger.Debug("store save", "driver", driver, "records", count, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

var (
	_ observability.PagerHooks  = (*logHooks)(nil)
	_ observability.SourceHooks = (*logHooks)(nil)
	_ observability.CacheHooks  = (*logHooks)(nil)
)

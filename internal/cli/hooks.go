package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineage/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events to the CLI logger.
// Everything except failures is logged at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnBuildStart(_ context.Context, memberCount int) {
	h.logger.Debug("building hierarchy", "members", memberCount)
}

func (h *logHooks) OnBuildComplete(_ context.Context, memberCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("hierarchy rejected", "members", memberCount, "err", err)
		return
	}
	h.logger.Debug("built hierarchy", "members", memberCount, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, vizType string, nodeCount int) {
	h.logger.Debug("computing layout", "type", vizType, "nodes", nodeCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "type", vizType, "err", err)
		return
	}
	h.logger.Debug("computed layout", "type", vizType, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

// The server writes its own access log; only failures are added here.
func (h *logHooks) OnRequest(context.Context, string, string, string) {}

func (h *logHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (h *logHooks) OnError(_ context.Context, requestID, method, path string, err error) {
	h.logger.Debug("request error", "id", requestID, "method", method, "path", path, "err", err)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)

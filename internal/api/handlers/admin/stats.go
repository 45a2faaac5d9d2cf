package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/5w1tchy/passkit/internal/api/apperr"
	"github.com/5w1tchy/passkit/internal/api/httpx"
)

const StatsCacheKey = "admin:stats"
const StatsCacheDuration = 30 * time.Second

const statsWindow = 24 * time.Hour

// GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Sto == nil {
		httpx.ErrorCode(w, http.StatusServiceUnavailable, "audit_disabled", "audit storage is not configured")
		return
	}
	ctx := r.Context()

	if h.writeCachedStats(ctx, w) {
		return
	}

	stats, err := h.fetchStats(ctx)
	if err != nil {
		log.Printf("[admin] stats: %v", err)
		apperr.HandleDBError(w, r, err, "Stats unavailable")
		return
	}
	h.cacheAndWriteStats(ctx, w, stats)
}

func (h *Handler) writeCachedStats(ctx context.Context, w http.ResponseWriter) bool {
	if h.RDB == nil {
		return false
	}
	cached, err := h.RDB.Get(ctx, StatsCacheKey).Bytes()
	if err != nil || len(cached) == 0 {
		return false
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(cached)
	return true
}

func (h *Handler) fetchStats(ctx context.Context) (*StatsResponse, error) {
	now := h.now().UTC()
	since := now.Add(-statsWindow)

	byCat, err := h.Sto.CountByCategory(ctx, since)
	if err != nil {
		return nil, err
	}
	totals, err := h.Sto.Totals(ctx)
	if err != nil {
		return nil, err
	}

	var dropped int64
	if h.Queue != nil {
		dropped = h.Queue.Dropped()
	}
	return &StatsResponse{
		Window:       statsWindow.String(),
		Since:        since,
		ByCategory:   byCat,
		Totals:       totals,
		AuditDropped: dropped,
		GeneratedAt:  now,
	}, nil
}

func (h *Handler) cacheAndWriteStats(ctx context.Context, w http.ResponseWriter, stats *StatsResponse) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "encode failed")
		return
	}
	if h.RDB != nil {
		_ = h.RDB.SetEx(ctx, StatsCacheKey, statsJSON, StatsCacheDuration).Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(statsJSON)
}

package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/5w1tchy/passkit/internal/api/apperr"
	"github.com/5w1tchy/passkit/internal/api/httpx"
	"github.com/google/uuid"
)

const reportURLTTL = 15 * time.Minute

// POST /admin/reports
// Snapshots fresh stats (never the cache) to object storage.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	if h.Sto == nil || h.Reports == nil {
		httpx.ErrorCode(w, http.StatusServiceUnavailable, "reports_disabled", "audit and object storage must be configured")
		return
	}
	ctx := r.Context()

	stats, err := h.fetchStats(ctx)
	if err != nil {
		log.Printf("[admin] report stats: %v", err)
		apperr.HandleDBError(w, r, err, "Stats unavailable")
		return
	}

	key := reportKey(stats.GeneratedAt)
	if err := h.Reports.PutJSON(ctx, key, stats); err != nil {
		log.Printf("[admin] report upload %s: %v", key, err)
		httpx.ErrorCode(w, http.StatusBadGateway, "upload_failed", "could not store report")
		return
	}
	url, err := h.Reports.PresignGet(ctx, key)
	if err != nil {
		log.Printf("[admin] presign %s: %v", key, err)
		if derr := h.Reports.DeleteObject(ctx, key); derr != nil {
			log.Printf("[admin] cleanup %s: %v", key, derr)
		}
		httpx.ErrorCode(w, http.StatusBadGateway, "presign_failed", "could not sign report url")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ReportResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: int(reportURLTTL / time.Second),
		Stats:     *stats,
	})
}

// reports/2026/10/18/20261018T030000Z-<uuid>.json
func reportKey(t time.Time) string {
	return "reports/" + t.Format("2006/01/02/") + t.Format("20060102T150405Z") + "-" + uuid.NewString() + ".json"
}

package admin

import (
	"time"

	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
)

type StatsResponse struct {
	Window       string                    `json:"window"`
	Since        time.Time                 `json:"since"`
	ByCategory   map[string]int            `json:"by_category"`
	Totals       []auditstore.SourceTotals `json:"totals"`
	AuditDropped int64                     `json:"audit_dropped"`
	GeneratedAt  time.Time                 `json:"generated_at"`
}

type ReportResponse struct {
	Key       string        `json:"key"`
	URL       string        `json:"url"`
	ExpiresIn int           `json:"expires_in"` // seconds
	Stats     StatsResponse `json:"stats"`
}

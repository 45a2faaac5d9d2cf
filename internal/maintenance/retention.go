package maintenance

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"
)

// Pruner deletes audit rows created before cutoff.
type Pruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartAuditRetention runs a daily job at localTime ("HH:MM") in tzName that
// deletes audit events older than keepDays.
// Call once at startup: maintenance.StartAuditRetention(ctx, store, 30, "03:00", "UTC")
func StartAuditRetention(ctx context.Context, p Pruner, keepDays int, localTime, tzName string) {
	if keepDays <= 0 {
		keepDays = 30
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}
	h, m := parseClock(localTime)

	go func() {
		for {
			now := time.Now().In(loc)
			timer := time.NewTimer(time.Until(NextRun(now, h, m)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				RunOnce(ctx, p, keepDays, time.Now())
			}
		}
	}()
}

// RunOnce prunes everything older than keepDays before now.
func RunOnce(ctx context.Context, p Pruner, keepDays int, now time.Time) {
	cutoff := now.Add(-time.Duration(keepDays) * 24 * time.Hour)
	n, err := p.PruneOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[retention] prune audit events failed: %v", err)
		return
	}
	log.Printf("[retention] pruned %d audit events older than %d days", n, keepDays)
}

// NextRun is the next h:m strictly after now, in now's location.
func NextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func parseClock(s string) (int, int) {
	h, m := 3, 0
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return h, m
	}
	if v, err := strconv.Atoi(parts[0]); err == nil && v >= 0 && v < 24 {
		h = v
	}
	if v, err := strconv.Atoi(parts[1]); err == nil && v >= 0 && v < 60 {
		m = v
	}
	return h, m
}

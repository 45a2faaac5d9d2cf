package admin

import (
	"context"
	"time"

	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/redis/go-redis/v9"
)

// Store is the read side of the audit log.
type Store interface {
	CountByCategory(ctx context.Context, since time.Time) (map[string]int, error)
	Totals(ctx context.Context) ([]auditstore.SourceTotals, error)
}

// Reports uploads JSON snapshots; *s3.S3Client satisfies it.
type Reports interface {
	PutJSON(ctx context.Context, objectKey string, v any) error
	PresignGet(ctx context.Context, objectKey string) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// DropCounter reports events lost by the audit queue.
type DropCounter interface {
	Dropped() int64
}

type Handler struct {
	RDB     redis.Cmdable // optional stats cache
	Sto     Store
	Reports Reports
	Queue   DropCounter

	now func() time.Time
}

func NewHandler(rdb redis.Cmdable, sto Store, reports Reports, queue DropCounter) *Handler {
	return &Handler{RDB: rdb, Sto: sto, Reports: reports, Queue: queue, now: time.Now}
}

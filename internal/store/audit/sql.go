package auditstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/passkit/internal/store/dbx"
	"github.com/5w1tchy/passkit/internal/strength"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

const schemaSQL = `CREATE TABLE IF NOT EXISTS password_audit_events (
  id           uuid PRIMARY KEY,
  source       text NOT NULL,
  category     text NOT NULL,
  entropy_bits double precision NOT NULL,
  length       integer NOT NULL,
  classes      smallint NOT NULL,
  created_at   timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_password_audit_events_created_at ON password_audit_events (created_at);`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := dbx.Exec(ctx, s.db, schemaSQL)
	return err
}

const insertTmpl = `INSERT INTO password_audit_events (id, source, category, entropy_bits, length, classes, created_at) VALUES %s`

func (s *Store) Insert(ctx context.Context, ev Event) error {
	return s.InsertBatch(ctx, []Event{ev})
}

// InsertBatch writes all events in one statement.
func (s *Store) InsertBatch(ctx context.Context, batch []Event) error {
	if len(batch) == 0 {
		return nil
	}
	const cols = 7
	args := make([]any, 0, len(batch)*cols)
	vals := make([]string, 0, len(batch))
	for i, ev := range batch {
		p := i*cols + 1
		vals = append(vals, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)", p, p+1, p+2, p+3, p+4, p+5, p+6))
		args = append(args, ev.ID, string(ev.Source), ev.Category.Slug(), ev.EntropyBits, ev.Length, ev.Classes, ev.CreatedAt)
	}
	_, err := dbx.Exec(ctx, s.db, fmt.Sprintf(insertTmpl, strings.Join(vals, ",")), args...)
	return err
}

// CountByCategory returns counts for events at or after since. Every
// category is present in the result, zero when unseen.
func (s *Store) CountByCategory(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := dbx.Query(ctx, s.db,
		`SELECT category, COUNT(*) FROM password_audit_events WHERE created_at >= $1 GROUP BY category`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int, 5)
	for _, c := range strength.Categories() {
		out[c.Slug()] = 0
	}
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		if _, err := strength.ParseCategory(cat); err != nil {
			continue // unknown rows from older schemas
		}
		out[cat] = n
	}
	return out, rows.Err()
}

// Totals groups all events by source.
func (s *Store) Totals(ctx context.Context) ([]SourceTotals, error) {
	rows, err := dbx.Query(ctx, s.db,
		`SELECT source, COUNT(*), COALESCE(AVG(entropy_bits), 0) FROM password_audit_events GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SourceTotals{}
	for rows.Next() {
		var t SourceTotals
		var src string
		if err := rows.Scan(&src, &t.Events, &t.AvgEntropy); err != nil {
			return nil, err
		}
		t.Source = Source(src)
		out = append(out, t)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes events created before cutoff.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := dbx.Exec(ctx, s.db, `DELETE FROM password_audit_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CLAUDE:SUMMARY Writes capture audit rows to SQLite and manages retention cleanup.
package observability

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/pageproof/dbopen"
	"github.com/hazyhaar/pageproof/idgen"
)

// CaptureEvent is one audit row: a single snapshot capture attempt.
type CaptureEvent struct {
	CaptureID     string `json:"capture_id"`
	Page          string `json:"page"`
	URL           string `json:"url,omitempty"`
	CanonicalPath string `json:"canonical_path"`
	Bytes         int    `json:"bytes"`
	KeepHistory   int    `json:"keep_history"`
	Archived      bool   `json:"archived"`
	Status        string `json:"status"` // "success" | "error"
	Error         string `json:"error,omitempty"`
	CreatedAt     int64  `json:"created_at"` // epoch seconds
}

// CaptureLog persists capture audit rows.
type CaptureLog struct {
	db     *sql.DB
	newID  idgen.Generator
	logger *slog.Logger
}

// CaptureLogOption configures a CaptureLog.
type CaptureLogOption func(*CaptureLog)

// WithIDGenerator sets a custom ID generator for capture IDs.
func WithIDGenerator(gen idgen.Generator) CaptureLogOption {
	return func(l *CaptureLog) { l.newID = gen }
}

// WithLogger sets the logger for non-fatal write failures.
func WithLogger(logger *slog.Logger) CaptureLogOption {
	return func(l *CaptureLog) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewCaptureLog creates an audit logger on db. The db must carry Schema.
func NewCaptureLog(db *sql.DB, opts ...CaptureLogOption) *CaptureLog {
	l := &CaptureLog{
		db:     db,
		newID:  idgen.Prefixed("cap_", idgen.Default),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Record writes an audit row and returns its ID. Errors are logged via
// slog but do not propagate: a failing audit store never fails a capture.
func (l *CaptureLog) Record(ctx context.Context, ev CaptureEvent) string {
	id := l.newID()
	createdAt := ev.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO capture_log (
			capture_id, page, url, canonical_path, bytes,
			keep_history, archived, status, error, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		id, ev.Page, ev.URL, ev.CanonicalPath, ev.Bytes,
		ev.KeepHistory, ev.Archived, ev.Status, ev.Error, createdAt)
	if err != nil {
		l.logger.Warn("observability: capture log write failed",
			"page", ev.Page, "error", err)
	}
	return id
}

// Recent returns the newest rows, most recent first. An empty page
// filter returns rows for all pages.
func (l *CaptureLog) Recent(ctx context.Context, page string, limit int) ([]CaptureEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	q := `SELECT capture_id, page, url, canonical_path, bytes,
	             keep_history, archived, status, error, created_at
	      FROM capture_log`
	args := []any{}
	if page != "" {
		q += ` WHERE page = ?`
		args = append(args, page)
	}
	q += ` ORDER BY created_at DESC, capture_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("observability: query capture log: %w", err)
	}
	defer rows.Close()

	var events []CaptureEvent
	for rows.Next() {
		var ev CaptureEvent
		var url, errMsg sql.NullString
		if err := rows.Scan(&ev.CaptureID, &ev.Page, &url, &ev.CanonicalPath,
			&ev.Bytes, &ev.KeepHistory, &ev.Archived, &ev.Status,
			&errMsg, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("observability: scan capture log: %w", err)
		}
		ev.URL = url.String
		ev.Error = errMsg.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Cleanup deletes rows older than days. Zero days means no cleanup.
func (l *CaptureLog) Cleanup(ctx context.Context, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().Unix() - int64(days)*86400
	return dbopen.RunTx(ctx, l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM capture_log WHERE created_at < ?`, cutoff); err != nil {
			return fmt.Errorf("observability: cleanup capture log: %w", err)
		}
		return nil
	})
}

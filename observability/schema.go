package observability

// Schema is the DDL for the capture audit tables. Pass it to
// dbopen.WithSchema, or embed it in your own schema management.
const Schema = `
CREATE TABLE IF NOT EXISTS capture_log (
    capture_id     TEXT PRIMARY KEY,
    page           TEXT NOT NULL,
    url            TEXT,
    canonical_path TEXT NOT NULL,
    bytes          INTEGER NOT NULL,
    keep_history   INTEGER NOT NULL,
    archived       INTEGER NOT NULL DEFAULT 0,
    status         TEXT NOT NULL,
    error          TEXT,
    created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_capture_log_page_time
    ON capture_log(page, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_capture_log_time
    ON capture_log(created_at DESC);
`

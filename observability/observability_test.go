package observability

import (
	"context"
	"log/slog"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/pageproof/dbopen"
)

func testLog(t *testing.T) *CaptureLog {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	return NewCaptureLog(db, WithLogger(slog.New(slog.DiscardHandler)))
}

func TestRecordAndRecent(t *testing.T) {
	l := testLog(t)
	ctx := context.Background()

	id := l.Record(ctx, CaptureEvent{
		Page:          "Home",
		URL:           "https://shop.example.test/",
		CanonicalPath: "page_snapshots/Home.html",
		Bytes:         2048,
		KeepHistory:   2,
		Archived:      true,
		Status:        "success",
	})
	if id == "" {
		t.Fatal("Record returned empty ID")
	}

	events, err := l.Recent(ctx, "Home", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	ev := events[0]
	if ev.CaptureID != id {
		t.Errorf("capture_id: got %q, want %q", ev.CaptureID, id)
	}
	if ev.Bytes != 2048 || !ev.Archived || ev.Status != "success" {
		t.Errorf("row mismatch: %+v", ev)
	}
	if ev.CreatedAt == 0 {
		t.Error("created_at not defaulted")
	}
}

func TestRecentFiltersByPage(t *testing.T) {
	l := testLog(t)
	ctx := context.Background()

	l.Record(ctx, CaptureEvent{Page: "Home", CanonicalPath: "h", Status: "success"})
	l.Record(ctx, CaptureEvent{Page: "Login", CanonicalPath: "l", Status: "success"})
	l.Record(ctx, CaptureEvent{Page: "Login", CanonicalPath: "l", Status: "error", Error: "disk full"})

	events, err := l.Recent(ctx, "Login", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("Login events: got %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Page != "Login" {
			t.Errorf("unexpected page %q", ev.Page)
		}
	}

	all, err := l.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("all events: got %d, want 3", len(all))
	}
}

func TestRecordFailureDoesNotPropagate(t *testing.T) {
	// No schema applied: every insert fails, Record must still return.
	db := dbopen.OpenMemory(t)
	l := NewCaptureLog(db, WithLogger(slog.New(slog.DiscardHandler)))

	if id := l.Record(context.Background(), CaptureEvent{Page: "Home", Status: "success"}); id == "" {
		t.Error("Record returned empty ID on write failure")
	}
}

func TestCleanup(t *testing.T) {
	l := testLog(t)
	ctx := context.Background()

	old := time.Now().Unix() - 90*86400
	l.Record(ctx, CaptureEvent{Page: "Home", CanonicalPath: "h", Status: "success", CreatedAt: old})
	l.Record(ctx, CaptureEvent{Page: "Home", CanonicalPath: "h", Status: "success"})

	if err := l.Cleanup(ctx, 30); err != nil {
		t.Fatal(err)
	}

	events, err := l.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("events after cleanup: got %d, want 1", len(events))
	}

	// Zero days disables cleanup.
	if err := l.Cleanup(ctx, 0); err != nil {
		t.Fatal(err)
	}
}

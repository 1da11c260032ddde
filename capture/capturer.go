// CLAUDE:SUMMARY Main orchestrator — wires browser, snapshot store, hints, and audit log; exposes MCP and HTTP surfaces.
// Package capture ties the scaffold together.
//
// The pipeline:
//
//	browser session → markup → snapstore (canonical + history) → audit
//
// A Capturer owns the snapshot store and, optionally, a browser manager
// and a capture audit log. The MCP tools and HTTP routes registered from
// it let an assistant pull canonical snapshots, history, and locator
// hints without touching the test harness.
//
// Usage:
//
//	c := capture.New(capture.Config{Store: store, Browser: mgr, Audit: log})
//	c.RegisterMCP(mcpServer)
//	c.RegisterHTTP(router)
package capture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/pageproof/browser"
	"github.com/hazyhaar/pageproof/hints"
	"github.com/hazyhaar/pageproof/observability"
	"github.com/hazyhaar/pageproof/snapstore"
)

// Config configures a Capturer.
type Config struct {
	// Store is the snapshot store. Required.
	Store *snapstore.Store

	// Browser enables live page captures. Optional: without it the
	// Capturer serves previously stored snapshots only.
	Browser *browser.Manager

	// Audit records one row per capture attempt. Optional.
	Audit *observability.CaptureLog

	// KeepHistory is the archive retention used by live captures.
	KeepHistory int

	Logger *slog.Logger
}

// Capturer orchestrates captures and serves stored snapshots.
type Capturer struct {
	store  *snapstore.Store
	mgr    *browser.Manager
	audit  *observability.CaptureLog
	keep   int
	logger *slog.Logger
}

// New creates a Capturer.
func New(cfg Config) (*Capturer, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("capture: store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.KeepHistory < 0 {
		cfg.KeepHistory = 0
	}
	return &Capturer{
		store:  cfg.Store,
		mgr:    cfg.Browser,
		audit:  cfg.Audit,
		keep:   cfg.KeepHistory,
		logger: cfg.Logger,
	}, nil
}

// Result summarises one completed capture.
type Result struct {
	CaptureID string `json:"capture_id,omitempty"`
	Page      string `json:"page"`
	URL       string `json:"url,omitempty"`
	Bytes     int    `json:"bytes"`
	Path      string `json:"path"`
}

// CapturePage opens a fresh session, navigates to url, and stores the
// resulting markup under name. The session is closed before returning.
func (c *Capturer) CapturePage(ctx context.Context, name, url string) (*Result, error) {
	if c.mgr == nil {
		return nil, fmt.Errorf("capture: no browser configured")
	}

	sess, err := c.mgr.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Open(ctx, url); err != nil {
		return nil, err
	}
	markup, err := sess.Markup(ctx)
	if err != nil {
		return nil, err
	}

	res, err := c.CaptureMarkup(ctx, name, markup)
	if err != nil {
		return nil, err
	}
	res.URL = url
	return res, nil
}

// CaptureSession serializes a live session the caller owns and stores
// the markup under name. The session stays open.
func (c *Capturer) CaptureSession(ctx context.Context, name string, sess *browser.Session) (*Result, error) {
	markup, err := sess.Markup(ctx)
	if err != nil {
		return nil, err
	}
	return c.CaptureMarkup(ctx, name, markup)
}

// CaptureMarkup stores already-serialized markup under name and records
// the audit row. This is the path page objects use: they own the
// session, the Capturer owns the bookkeeping.
func (c *Capturer) CaptureMarkup(ctx context.Context, name string, markup []byte) (*Result, error) {
	err := c.store.CaptureKeep(name, markup, c.keep)

	res := &Result{
		Page:  name,
		Bytes: len(markup),
		Path:  c.store.CanonicalPath(name),
	}

	if c.audit != nil {
		ev := observability.CaptureEvent{
			Page:          name,
			CanonicalPath: res.Path,
			Bytes:         len(markup),
			KeepHistory:   c.keep,
			Archived:      c.keep > 0 && err == nil,
			Status:        "success",
		}
		if err != nil {
			ev.Status = "error"
			ev.Error = err.Error()
		}
		res.CaptureID = c.audit.Record(ctx, ev)
	}

	if err != nil {
		return nil, err
	}
	return res, nil
}

// Latest returns the canonical snapshot for name.
func (c *Capturer) Latest(name string) ([]byte, error) {
	return c.store.Latest(name)
}

// History returns the archive entries for name, oldest first.
func (c *Capturer) History(name string) ([]snapstore.Entry, error) {
	return c.store.History(name)
}

// Pages lists the captured page names.
func (c *Capturer) Pages() ([]string, error) {
	return c.store.Pages()
}

// Hints extracts locator hints from the canonical snapshot of name.
func (c *Capturer) Hints(name string) ([]hints.Hint, error) {
	markup, err := c.store.Latest(name)
	if err != nil {
		return nil, err
	}
	return hints.Extract(markup)
}

// RecentCaptures returns the newest audit rows, most recent first.
func (c *Capturer) RecentCaptures(ctx context.Context, page string, limit int) ([]observability.CaptureEvent, error) {
	if c.audit == nil {
		return nil, nil
	}
	return c.audit.Recent(ctx, page, limit)
}

// Close shuts down the browser if one is configured.
func (c *Capturer) Close() error {
	if c.mgr != nil {
		return c.mgr.Close()
	}
	return nil
}

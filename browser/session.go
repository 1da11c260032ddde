// CLAUDE:SUMMARY One live tab: navigation, markup serialization, screenshots.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Session is one live tab. It is the markup supplier for the snapshot
// store: Markup serializes the current DOM on demand. A Session is not
// safe for concurrent use; tests drive it sequentially.
type Session struct {
	page       *rod.Page
	navTimeout time.Duration
	logger     *slog.Logger
}

// Page exposes the underlying Rod page for element-level work (pom).
func (s *Session) Page() *rod.Page { return s.page }

// Open navigates to url and waits for the load event, bounded by the
// configured navigation timeout.
func (s *Session) Open(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	if err := s.page.Context(navCtx).Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := s.page.Context(navCtx).WaitLoad(); err != nil {
		// Slow third-party assets should not fail the test; the DOM is
		// usually usable at this point.
		s.logger.Warn("browser: wait load timeout", "url", url, "error", err)
	}
	return nil
}

// Refresh reloads the current page and waits for the load event.
func (s *Session) Refresh(ctx context.Context) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	if err := s.page.Context(navCtx).Reload(); err != nil {
		return fmt.Errorf("browser: reload: %w", err)
	}
	if err := s.page.Context(navCtx).WaitLoad(); err != nil {
		s.logger.Warn("browser: wait load timeout after reload", "error", err)
	}
	return nil
}

// Markup serializes the complete current DOM as outer HTML. Calling it
// without a live page is a precondition violation surfaced as an error.
func (s *Session) Markup(ctx context.Context) ([]byte, error) {
	if s.page == nil {
		return nil, fmt.Errorf("browser: no active page")
	}
	res, err := s.page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("browser: serialize DOM: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

// CurrentURL returns the page's current URL.
func (s *Session) CurrentURL() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", fmt.Errorf("browser: page info: %w", err)
	}
	return info.URL, nil
}

// Title returns the page's title.
func (s *Session) Title() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", fmt.Errorf("browser: page info: %w", err)
	}
	return info.Title, nil
}

// Screenshot captures the viewport as PNG and writes it to path.
func (s *Session) Screenshot(path string) error {
	data, err := s.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("browser: screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("browser: write screenshot %s: %w", path, err)
	}
	return nil
}

// Close closes the tab.
func (s *Session) Close() error {
	if s.page != nil {
		return s.page.Close()
	}
	return nil
}

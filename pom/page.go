// CLAUDE:SUMMARY Base page object: locator tables, element interaction helpers, auto-capture into the snapshot store.
// Package pom is the page-object base for UI tests.
//
// A Page binds a browser session to an immutable locator table (semantic
// element name → CSS selector) and offers the usual interaction helpers:
// click, type, read text, wait for visibility. When a snapshot store is
// attached, every navigation captures the page HTML so locator tables
// can be authored from the stored markup instead of live debugging.
package pom

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/hazyhaar/pageproof/browser"
	"github.com/hazyhaar/pageproof/snapstore"
)

// Locators maps semantic element names to CSS selectors. The table is
// copied at construction; page objects never share mutable locator state.
type Locators map[string]string

// DefaultTimeout bounds element lookups and visibility waits.
const DefaultTimeout = 10 * time.Second

// Page is the base page object.
type Page struct {
	name     string
	sess     *browser.Session
	locators Locators
	timeout  time.Duration
	store    *snapstore.Store
	logger   *slog.Logger
}

// Option configures a Page.
type Option func(*Page)

// WithTimeout sets the element wait timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(p *Page) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithAutoCapture attaches a snapshot store; Open and Refresh then
// capture the page markup after every navigation.
func WithAutoCapture(s *snapstore.Store) Option {
	return func(p *Page) { p.store = s }
}

// WithLogger sets the page logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Page) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPage creates a page object named name on the given session.
func NewPage(name string, sess *browser.Session, locators Locators, opts ...Option) *Page {
	copied := make(Locators, len(locators))
	for k, v := range locators {
		copied[k] = v
	}
	p := &Page{
		name:     name,
		sess:     sess,
		locators: copied,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Name returns the logical page name used for snapshot grouping.
func (p *Page) Name() string { return p.name }

// Session returns the underlying browser session.
func (p *Page) Session() *browser.Session { return p.sess }

// Selector resolves a semantic element name. Unknown names are errors,
// not panics: a typo in a test reads as a failed step.
func (p *Page) Selector(element string) (string, error) {
	sel, ok := p.locators[element]
	if !ok {
		return "", fmt.Errorf("pom: page %s has no locator %q", p.name, element)
	}
	return sel, nil
}

// Open navigates to url and, with auto-capture enabled, stores the
// resulting markup under the page name.
func (p *Page) Open(ctx context.Context, url string) error {
	if err := p.sess.Open(ctx, url); err != nil {
		return err
	}
	p.autoCapture(ctx)
	return nil
}

// Refresh reloads the page and re-captures it.
func (p *Page) Refresh(ctx context.Context) error {
	if err := p.sess.Refresh(ctx); err != nil {
		return err
	}
	p.autoCapture(ctx)
	return nil
}

// Capture stores the current markup under the page name using the
// store's default retention.
func (p *Page) Capture(ctx context.Context) error {
	if p.store == nil {
		return fmt.Errorf("pom: page %s has no snapshot store", p.name)
	}
	markup, err := p.sess.Markup(ctx)
	if err != nil {
		return err
	}
	return p.store.Capture(p.name, markup)
}

// autoCapture is best-effort: a capture problem must not fail navigation.
func (p *Page) autoCapture(ctx context.Context) {
	if p.store == nil {
		return
	}
	if err := p.Capture(ctx); err != nil {
		p.logger.Warn("pom: auto-capture failed", "page", p.name, "error", err)
	}
}

// Click waits for the element to be visible and clicks it.
func (p *Page) Click(element string) error {
	el, err := p.visibleElement(element)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("pom: click %s.%s: %w", p.name, element, err)
	}
	return nil
}

// Type clears the element and types text into it.
func (p *Page) Type(element, text string) error {
	el, err := p.visibleElement(element)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("pom: select text %s.%s: %w", p.name, element, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("pom: type into %s.%s: %w", p.name, element, err)
	}
	return nil
}

// Text waits for the element to be visible and returns its text content.
func (p *Page) Text(element string) (string, error) {
	el, err := p.visibleElement(element)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("pom: read text %s.%s: %w", p.name, element, err)
	}
	return text, nil
}

// Visible reports whether the element becomes visible within the page
// timeout. Lookup failures read as "not visible".
func (p *Page) Visible(element string) bool {
	_, err := p.visibleElement(element)
	return err == nil
}

// WaitFor blocks until the element is present in the DOM.
func (p *Page) WaitFor(element string) error {
	sel, err := p.Selector(element)
	if err != nil {
		return err
	}
	if _, err := p.sess.Page().Timeout(p.timeout).Element(sel); err != nil {
		return fmt.Errorf("pom: wait for %s.%s: %w", p.name, element, err)
	}
	return nil
}

func (p *Page) visibleElement(element string) (*rod.Element, error) {
	sel, err := p.Selector(element)
	if err != nil {
		return nil, err
	}
	el, err := p.sess.Page().Timeout(p.timeout).Element(sel)
	if err != nil {
		return nil, fmt.Errorf("pom: find %s.%s (%s): %w", p.name, element, sel, err)
	}
	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("pom: wait visible %s.%s: %w", p.name, element, err)
	}
	return el, nil
}

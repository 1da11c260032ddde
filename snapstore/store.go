// CLAUDE:SUMMARY Canonical + rotating-history filesystem store for captured page HTML.
// Package snapstore persists point-in-time HTML captures of named pages.
//
// Each capture overwrites a canonical file ({root}/{name}.html) so the
// latest markup is always discoverable at a fixed path, and optionally
// appends a timestamped copy under {root}/history/ bounded by a retention
// count. The canonical copy is the primary artifact consumed by locator
// tooling; history and digest bookkeeping are best-effort and never fail
// a capture.
package snapstore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// tsFormat is the archive filename timestamp. Second resolution: captures
// are driven by test cadence, not tight loops.
const tsFormat = "20060102_150405"

// historyDir is the subdirectory of the store root holding archive copies.
const historyDir = "history"

// DefaultKeepHistory is the archive retention bound used when none is
// configured.
const DefaultKeepHistory = 2

// Store writes page captures under a single root directory. The store
// exclusively owns the root and its history subdirectory; captures of
// distinct page names touch disjoint paths.
type Store struct {
	root   string
	ext    string
	keep   int
	logger *slog.Logger
	now    func() time.Time
	digest Digester
}

// Option configures a Store.
type Option func(*Store)

// WithExtension sets the snapshot file extension. Default: ".html".
func WithExtension(ext string) Option {
	return func(s *Store) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithKeepHistory sets the default archive retention bound. Zero disables
// archiving for captures that do not override it.
func WithKeepHistory(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.keep = n
		}
	}
}

// WithLogger sets the logger for best-effort failure warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the timestamp source. Tests use this to produce
// deterministic archive names.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDigest attaches a digest writer. After every canonical write the
// digester output is stored next to it as {name}.md, best-effort.
func WithDigest(d Digester) Option {
	return func(s *Store) { s.digest = d }
}

// New creates a Store rooted at dir. The directory is created lazily on
// first capture.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		root:   dir,
		ext:    ".html",
		keep:   DefaultKeepHistory,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// CanonicalPath returns the fixed path holding the latest capture of
// name, whether or not it exists yet.
func (s *Store) CanonicalPath(name string) string { return s.canonicalPath(name) }

// Capture persists content for name using the store's default retention.
func (s *Store) Capture(name string, content []byte) error {
	return s.CaptureKeep(name, content, s.keep)
}

// CaptureKeep persists content for name, keeping at most keep archive
// copies. The canonical write is fatal on failure; archive, trim, and
// digest failures are logged as warnings and do not fail the capture.
// Retention is always trimmed to the keep value of the current call.
//
// Capturing the same name twice is intentionally destructive of the
// canonical copy and additive to the archive up to the retention bound.
func (s *Store) CaptureKeep(name string, content []byte, keep int) error {
	if err := validName(name); err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("snapstore: create root %s: %w", s.root, err)
	}

	canonical := s.canonicalPath(name)
	if err := os.WriteFile(canonical, content, 0o644); err != nil {
		return fmt.Errorf("snapstore: canonical write %s: %w", canonical, err)
	}

	if keep > 0 {
		if err := s.archive(name, content); err != nil {
			s.logger.Warn("snapstore: archive write failed",
				"page", name, "error", err)
		} else if removed, err := s.trim(name, keep); err != nil {
			s.logger.Warn("snapstore: history trim failed",
				"page", name, "error", err)
		} else if removed > 0 {
			s.logger.Debug("snapstore: history trimmed",
				"page", name, "removed", removed, "keep", keep)
		}
	}

	if s.digest != nil {
		if err := s.writeDigest(name, content); err != nil {
			s.logger.Warn("snapstore: digest write failed",
				"page", name, "error", err)
		}
	}

	return nil
}

// Latest reads the canonical snapshot for name.
func (s *Store) Latest(name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.canonicalPath(name))
	if err != nil {
		return nil, fmt.Errorf("snapstore: read latest %s: %w", name, err)
	}
	return data, nil
}

// Entry describes one archive copy of a page.
type Entry struct {
	Page      string    `json:"page"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// History lists the archive entries for name, oldest first. A page with
// no archive copies yields an empty slice, not an error.
func (s *Store) History(name string) ([]Entry, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	files, err := s.archiveFiles(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapstore: list history %s: %w", name, err)
	}
	sort.Strings(files)

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		ts, ok := s.parseTimestamp(name, f)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Page:      name,
			Path:      filepath.Join(s.root, historyDir, f),
			Timestamp: ts,
		})
	}
	return entries, nil
}

// Pages lists the page names with a canonical snapshot, sorted.
func (s *Store) Pages() ([]string, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapstore: list pages: %w", err)
	}
	var names []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		n := de.Name()
		if strings.HasSuffix(n, s.ext) {
			names = append(names, strings.TrimSuffix(n, s.ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) canonicalPath(name string) string {
	return filepath.Join(s.root, name+s.ext)
}

// archive writes the timestamped history copy.
func (s *Store) archive(name string, content []byte) error {
	dir := filepath.Join(s.root, historyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fname := name + "_" + s.now().Format(tsFormat) + s.ext
	return os.WriteFile(filepath.Join(dir, fname), content, 0o644)
}

// trim deletes the oldest archive copies of name beyond keep. It returns
// the number of files removed. The error return makes the best-effort
// contract explicit: callers log it, they do not propagate it.
func (s *Store) trim(name string, keep int) (int, error) {
	files, err := s.archiveFiles(name)
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	// tsFormat sorts lexicographically, so name order is capture order.
	sort.Strings(files)

	removed := 0
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(filepath.Join(s.root, historyDir, f)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// archiveFiles returns the history filenames belonging to name. The
// timestamp shape is checked so that page "Login" never claims files of
// page "Login_Form".
func (s *Store) archiveFiles(name string) ([]string, error) {
	dirents, err := os.ReadDir(filepath.Join(s.root, historyDir))
	if err != nil {
		return nil, err
	}
	prefix := name + "_"
	var files []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		f := de.Name()
		if !strings.HasPrefix(f, prefix) || !strings.HasSuffix(f, s.ext) {
			continue
		}
		if _, ok := s.parseTimestamp(name, f); !ok {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

func (s *Store) parseTimestamp(name, file string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(file, name+"_"), s.ext)
	ts, err := time.ParseInLocation(tsFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (s *Store) writeDigest(name string, content []byte) error {
	md, err := s.digest.Digest(content)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.root, name+".md"), md, 0o644)
}

// validName rejects names that would escape the store root. Callers are
// expected to pass stable logical page names, not URLs.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("snapstore: empty page name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("snapstore: page name %q contains path separators", name)
	}
	return nil
}

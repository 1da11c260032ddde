package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pageproof.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Snapshots.Root != "page_snapshots" {
		t.Errorf("snapshots.root: got %q", cfg.Snapshots.Root)
	}
	if cfg.Snapshots.KeepHistory != 2 {
		t.Errorf("snapshots.keep_history: got %d, want 2", cfg.Snapshots.KeepHistory)
	}
	if cfg.Browser.NavTimeout.Std() != 30*time.Second {
		t.Errorf("browser.nav_timeout: got %v", cfg.Browser.NavTimeout)
	}
	if cfg.Server.Addr != "127.0.0.1:8787" {
		t.Errorf("server.addr: got %q", cfg.Server.Addr)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
browser:
  headful: true
  stealth: true
  nav_timeout: 10s
snapshots:
  root: /tmp/snaps
  keep_history: 5
  digest: true
test_data:
  base_url: https://shop.example.test/
  username: qa@example.test
`))
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Browser.Headful || !cfg.Browser.Stealth {
		t.Error("browser flags not applied")
	}
	if cfg.Browser.NavTimeout.Std() != 10*time.Second {
		t.Errorf("nav_timeout: got %v, want 10s", cfg.Browser.NavTimeout)
	}
	if cfg.Snapshots.KeepHistory != 5 {
		t.Errorf("keep_history: got %d, want 5", cfg.Snapshots.KeepHistory)
	}
	if !cfg.Snapshots.Digest {
		t.Error("digest not applied")
	}
	if cfg.TestData.BaseURL != "https://shop.example.test/" {
		t.Errorf("base_url: got %q", cfg.TestData.BaseURL)
	}
	// Untouched section keeps its default.
	if cfg.Observability.DBPath != "pageproof.db" {
		t.Errorf("db_path default lost: got %q", cfg.Observability.DBPath)
	}
}

func TestExplicitZeroKeepHistory(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "snapshots:\n  keep_history: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Snapshots.KeepHistory != 0 {
		t.Errorf("explicit keep_history 0 overridden: got %d", cfg.Snapshots.KeepHistory)
	}
}

func TestLoadFileRejectsNegativeRetention(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "snapshots:\n  keep_history: -1\n")); err == nil {
		t.Error("negative keep_history accepted")
	}
	if _, err := LoadFile(writeConfig(t, "observability:\n  retention_days: -1\n")); err == nil {
		t.Error("negative retention_days accepted")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

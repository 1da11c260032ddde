package idgen

import (
	"strings"
	"testing"
)

func TestNanoID(t *testing.T) {
	gen := NanoID(12)
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen()
		if len(id) != 12 {
			t.Fatalf("NanoID length: got %d, want 12", len(id))
		}
		for _, c := range id {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')) {
				t.Fatalf("NanoID: unexpected character %q in %q", c, id)
			}
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("NanoID: duplicate at iteration %d: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestUUIDv7(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := gen()
		if len(id) != 36 || strings.Count(id, "-") != 4 {
			t.Fatalf("UUIDv7: bad format %q", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("UUIDv7: duplicate at iteration %d", i)
		}
		seen[id] = struct{}{}
	}
}

func TestPrefixed(t *testing.T) {
	id := Prefixed("cap_", NanoID(8))()
	if !strings.HasPrefix(id, "cap_") {
		t.Fatalf("Prefixed: got %q, want cap_ prefix", id)
	}
	if len(id) != 4+8 {
		t.Fatalf("Prefixed length: got %d, want 12", len(id))
	}
}

func TestTimestamped(t *testing.T) {
	id := Timestamped(NanoID(6))()
	if !strings.Contains(id, "Z_") {
		t.Fatalf("Timestamped: bad format %q", id)
	}
}

func TestDefault(t *testing.T) {
	if id := New(); len(id) != 36 {
		t.Fatalf("New: got length %d for %q, want 36", len(id), id)
	}
}

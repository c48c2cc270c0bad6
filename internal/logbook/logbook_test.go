package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogbook(t *testing.T) *Logbook {
	t.Helper()
	lb, err := New(filepath.Join(t.TempDir(), "logs", "client.log"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return lb
}

func TestTailReturnsMostRecentEntries(t *testing.T) {
	lb := newTestLogbook(t)
	lb.Append(ScopeSession, LevelInfo, "first")
	lb.Append(ScopeOrders, LevelWarn, "second")
	lb.Append(ScopeSales, LevelError, "third")

	lines := lb.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("Tail(2) returned %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "second") || !strings.Contains(lines[1], "third") {
		t.Fatalf("Tail returned wrong entries: %v", lines)
	}
}

func TestEntriesCarryScopeAndLevel(t *testing.T) {
	lb := newTestLogbook(t)
	lb.Scoped(ScopeOrders).Warn("refresh after %s failed", "approve")

	lines := lb.Tail(1)
	if len(lines) != 1 {
		t.Fatalf("Tail(1) returned %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") {
		t.Errorf("entry missing level: %q", lines[0])
	}
	if !strings.Contains(lines[0], "[orders]") {
		t.Errorf("entry missing scope: %q", lines[0])
	}
	if !strings.Contains(lines[0], "refresh after approve failed") {
		t.Errorf("entry missing message: %q", lines[0])
	}
}

func TestTailMissingFileReturnsNil(t *testing.T) {
	lb := newTestLogbook(t)
	if lines := lb.Tail(5); lines != nil {
		t.Fatalf("Tail on missing file returned %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Append(ScopeClient, LevelInfo, "ignored")
	lb.Scoped(ScopeSession).Warn("ignored")
	if lines := lb.Tail(3); lines != nil {
		t.Fatalf("nil Tail returned %v", lines)
	}
	if lb.Path() != "" {
		t.Fatalf("nil Path returned %q", lb.Path())
	}
}

func TestRotationKeepsNewestEntries(t *testing.T) {
	lb := newTestLogbook(t)

	// Grow the file past the cap, then append once more to trigger rotation.
	filler := strings.Repeat("x", 512)
	for i := 0; i < (maxFileBytes/512)+16; i++ {
		lb.Append(ScopeClient, LevelInfo, filler)
	}
	lb.Append(ScopeClient, LevelInfo, "newest entry survives")

	info, err := os.Stat(lb.Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	// Rotation runs before each append, so the file may exceed the cap by at
	// most one entry.
	if info.Size() > maxFileBytes+1024 {
		t.Fatalf("file not rotated: %d bytes", info.Size())
	}
	lines := lb.Tail(1)
	if len(lines) != 1 || !strings.Contains(lines[0], "newest entry survives") {
		t.Fatalf("newest entry lost after rotation: %v", lines)
	}
}

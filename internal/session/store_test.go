package session

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to open session store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureSessionIsDailyAndIdempotent(t *testing.T) {
	s := newTestStore(t)

	morning := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	first, err := s.EnsureSession("u1", morning)
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	second, err := s.EnsureSession("u1", evening)
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if first != second {
		t.Errorf("Same calendar day should reuse the session: %s vs %s", first, second)
	}

	third, err := s.EnsureSession("u1", nextDay)
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if third == first {
		t.Error("A new day should open a new session")
	}

	// Different users never share sessions
	other, err := s.EnsureSession("u2", morning)
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if other == first {
		t.Error("Users should not share a session")
	}
}

func TestRecordAndListInteractions(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	kinds := []string{"wisdom", "tech", "wellness"}
	for i, k := range kinds {
		if err := s.RecordInteraction("u1", k, "summary "+k, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordInteraction failed: %v", err)
		}
	}

	got, err := s.RecentInteractions("u1", 10)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 interactions, got %d", len(got))
	}
	// Newest first
	if got[0].Kind != "wellness" || got[2].Kind != "wisdom" {
		t.Errorf("Order wrong: %s ... %s", got[0].Kind, got[2].Kind)
	}
	if !strings.HasPrefix(got[0].Summary, "summary") {
		t.Errorf("Summary lost: %q", got[0].Summary)
	}
}

func TestRecentInteractionsLimit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		if err := s.RecordInteraction("u1", "tech", "x", base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordInteraction failed: %v", err)
		}
	}

	got, err := s.RecentInteractions("u1", 5)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 interactions, got %d", len(got))
	}
}

func TestLastSeen(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.LastSeen("u1"); err != nil || ok {
		t.Fatalf("Fresh user should have no last-seen (ok=%v err=%v)", ok, err)
	}

	ts := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	if err := s.RecordInteraction("u1", "tech", "x", ts); err != nil {
		t.Fatalf("RecordInteraction failed: %v", err)
	}

	got, ok, err := s.LastSeen("u1")
	if err != nil || !ok {
		t.Fatalf("LastSeen failed (ok=%v err=%v)", ok, err)
	}
	if !got.Equal(ts) {
		t.Errorf("LastSeen mismatch: got %v, want %v", got, ts)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("Failed to open session store: %v", err)
	}
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := s.RecordInteraction("u1", "tech", "persisted", ts); err != nil {
		t.Fatalf("RecordInteraction failed: %v", err)
	}
	s.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen session store: %v", err)
	}
	defer s2.Close()

	got, err := s2.RecentInteractions("u1", 10)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(got) != 1 || got[0].Summary != "persisted" {
		t.Errorf("History lost across reopen: %+v", got)
	}
}

func TestGreeting(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		lastSeen   time.Time
		firstVisit bool
		want       string
	}{
		{"first visit", time.Time{}, true, "starts today"},
		{"same day", now.Add(-2 * time.Hour), false, "Back so soon"},
		{"yesterday", now.Add(-24 * time.Hour), false, "Right on schedule"},
		{"long gap", now.Add(-5 * 24 * time.Hour), false, "5 days"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Greeting("morgan", tc.lastSeen, now, tc.firstVisit)
			if !strings.Contains(got, tc.want) {
				t.Errorf("Greeting %q should contain %q", got, tc.want)
			}
			if !strings.Contains(got, "morgan") {
				t.Errorf("Greeting %q should name the user", got)
			}
		})
	}
}

package growth

import "testing"

func TestAddInsightWithoutInitializeUser(t *testing.T) {
	e := newTestEngine(t)

	// Insight storage is keyed independently of growth records
	id := e.AddInsight("u1", "recommendation", "Try a new creative hobby", []string{"creative"})
	if id == "" {
		t.Fatal("AddInsight returned an empty ID")
	}

	got := e.UnviewedInsights("u1")
	if len(got) != 1 {
		t.Fatalf("Expected 1 unviewed insight, got %d", len(got))
	}
	if got[0].ID != id || got[0].Viewed {
		t.Errorf("Insight state wrong: %+v", got[0])
	}
}

func TestMarkInsightsViewedByID(t *testing.T) {
	e := newTestEngine(t)

	first := e.AddInsight("u1", "recommendation", "one", nil)
	second := e.AddInsight("u1", "recommendation", "two", nil)

	if changed := e.MarkInsightsViewed("u1", first); changed != 1 {
		t.Errorf("Expected 1 change, got %d", changed)
	}

	got := e.UnviewedInsights("u1")
	if len(got) != 1 || got[0].ID != second {
		t.Errorf("Only the second insight should remain unviewed: %+v", got)
	}

	// Marking again is a no-op
	if changed := e.MarkInsightsViewed("u1", first); changed != 0 {
		t.Errorf("Re-marking should change nothing, got %d", changed)
	}
}

func TestMarkAllInsightsViewed(t *testing.T) {
	e := newTestEngine(t)

	e.AddInsight("u1", "recommendation", "one", nil)
	e.AddInsight("u1", "recommendation", "two", nil)

	if changed := e.MarkInsightsViewed("u1"); changed != 2 {
		t.Errorf("Expected 2 changes, got %d", changed)
	}
	if got := e.UnviewedInsights("u1"); len(got) != 0 {
		t.Errorf("Expected no unviewed insights, got %d", len(got))
	}
}

func TestInsightsListsViewedAndUnviewed(t *testing.T) {
	e := newTestEngine(t)

	first := e.AddInsight("u1", "recommendation", "one", nil)
	e.AddInsight("u1", "recommendation", "two", nil)
	e.MarkInsightsViewed("u1", first)

	all := e.Insights("u1")
	if len(all) != 2 {
		t.Fatalf("Expected 2 insights, got %d", len(all))
	}
	if !all[0].Viewed || all[1].Viewed {
		t.Errorf("Viewed flags wrong: %+v", all)
	}
}

func TestMarkInsightsViewedUnknownUser(t *testing.T) {
	e := newTestEngine(t)
	if changed := e.MarkInsightsViewed("nobody"); changed != 0 {
		t.Errorf("Unknown user should change nothing, got %d", changed)
	}
}

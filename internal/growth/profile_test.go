package growth

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestGetProfileUnknownUser(t *testing.T) {
	e := newTestEngine(t)
	if p := e.GetProfile("nobody"); p != nil {
		t.Errorf("Expected nil profile for unknown user, got %+v", p)
	}
}

func TestGetProfileAggregates(t *testing.T) {
	e := newTestEngine(t)
	e.InitializeUser("u1", "morgan")

	rec := e.growth.Users["u1"]
	rec.Domains["creative"].Level = 4
	rec.Domains["physical"].Level = 2

	p := e.GetProfile("u1")
	if p == nil {
		t.Fatal("Profile missing")
	}
	if p.Username != "morgan" {
		t.Errorf("Username wrong: %s", p.Username)
	}

	// 6 domains at level 1 plus 4 and 2
	if p.TotalLevel != 12 {
		t.Errorf("Expected total level 12, got %d", p.TotalLevel)
	}
	if want := 12.0 / 8.0; p.AverageLevel != want {
		t.Errorf("Expected average %v, got %v", want, p.AverageLevel)
	}
	if p.HighestDomain != "creative" {
		t.Errorf("Expected highest domain creative, got %s", p.HighestDomain)
	}
}

func TestHighestDomainTieBreakUsesRegistryOrder(t *testing.T) {
	e := newTestEngine(t)
	e.InitializeUser("u1", "morgan")

	rec := e.growth.Users["u1"]
	rec.Domains["spiritual"].Level = 3
	rec.Domains["creative"].Level = 3

	// creative precedes spiritual in the registry
	if p := e.GetProfile("u1"); p.HighestDomain != "creative" {
		t.Errorf("Tie should resolve to registry order, got %s", p.HighestDomain)
	}
}

func TestRecentActivitiesNewestFirstAndCapped(t *testing.T) {
	e := newTestEngine(t)
	clock := pinClock(e)
	e.InitializeUser("u1", "morgan")

	for i := 0; i < 15; i++ {
		e.LogActivity("u1", "learning", []string{"cognitive"}, fmt.Sprintf("activity %d", i))
		clock.advance(time.Hour)
	}

	p := e.GetProfile("u1")
	if len(p.RecentActivities) != 10 {
		t.Fatalf("Expected 10 recent activities, got %d", len(p.RecentActivities))
	}
	if p.RecentActivities[0].Description != "activity 14" {
		t.Errorf("Most recent activity should come first, got %q", p.RecentActivities[0].Description)
	}
	for i := 1; i < len(p.RecentActivities); i++ {
		if p.RecentActivities[i].Timestamp.After(p.RecentActivities[i-1].Timestamp) {
			t.Fatal("Recent activities not in descending timestamp order")
		}
	}
}

func TestGetProfileIsReadOnly(t *testing.T) {
	e := newTestEngine(t)
	e.InitializeUser("u1", "morgan")
	e.AddInsight("u1", "recommendation", "try something new", nil)

	p := e.GetProfile("u1")
	if len(p.UnviewedInsights) != 1 {
		t.Fatalf("Expected 1 unviewed insight, got %d", len(p.UnviewedInsights))
	}

	// Reading must not flip the viewed flag
	if again := e.GetProfile("u1"); len(again.UnviewedInsights) != 1 {
		t.Error("GetProfile must not mark insights viewed")
	}

	// Mutating the projection must not leak into the stored record
	p.Domains["cognitive"] = DomainProgress{Level: 99}
	p.UnviewedInsights[0].Viewed = true
	if e.growth.Users["u1"].Domains["cognitive"].Level != 1 {
		t.Error("Profile mutation leaked into the growth record")
	}
	if e.insights.Users["u1"].Insights[0].Viewed {
		t.Error("Profile mutation leaked into the insight table")
	}
}

func TestConcurrentLogActivityLosesNoUpdates(t *testing.T) {
	e := newTestEngine(t)
	e.InitializeUser("u1", "morgan")

	const callers = 40
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			if !e.LogActivity("u1", "learning", []string{"cognitive"}, "parallel study") {
				return fmt.Errorf("LogActivity failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	rec := e.growth.Users["u1"]
	if len(rec.ActivityLog) != callers {
		t.Errorf("Expected %d activities, got %d", callers, len(rec.ActivityLog))
	}

	// Total earned XP is conserved across level-ups: the amount absorbed
	// by thresholds plus the remainder equals callers * increment.
	dp := rec.Domains["cognitive"]
	absorbed := 0
	for l := 1; l < dp.Level; l++ {
		absorbed += l * 100
	}
	if got := absorbed + dp.XP; got != callers*e.xpPerActivity {
		t.Errorf("Lost updates: accounted xp %d, want %d", got, callers*e.xpPerActivity)
	}
	if dp.XP >= dp.Level*100 {
		t.Errorf("Invariant violated: xp=%d level=%d", dp.XP, dp.Level)
	}
}

func TestConcurrentDistinctUsersProceedIndependently(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 8; i++ {
		e.InitializeUser(fmt.Sprintf("u%d", i), fmt.Sprintf("user %d", i))
	}

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		userID := fmt.Sprintf("u%d", i)
		g.Go(func() error {
			for j := 0; j < 10; j++ {
				if !e.LogActivity(userID, "learning", []string{"cognitive"}, "study") {
					return fmt.Errorf("LogActivity failed for %s", userID)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		rec := e.growth.Users[fmt.Sprintf("u%d", i)]
		if len(rec.ActivityLog) != 10 {
			t.Errorf("User u%d lost activities: %d", i, len(rec.ActivityLog))
		}
	}
}

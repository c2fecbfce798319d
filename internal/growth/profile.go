package growth

import (
	"sort"
)

// GetProfile aggregates the user's growth state into a read-only
// projection. Returns nil if the user was never initialized. Nothing is
// mutated: reading unviewed insights does not mark them viewed.
func (e *Engine) GetProfile(userID string) *Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.growth.Users[userID]
	if !ok {
		return nil
	}

	p := &Profile{
		UserID:   userID,
		Username: rec.Username,
		Domains:  make(map[string]DomainProgress, len(rec.Domains)),
		Streak:   rec.Streak,
	}

	// Registry order fixes the tie-break for the highest domain.
	total := 0
	best := -1
	for _, d := range Domains {
		dp := rec.Domains[d]
		if dp == nil {
			continue
		}
		p.Domains[d] = *dp
		total += dp.Level
		if dp.Level > best {
			best = dp.Level
			p.HighestDomain = d
		}
	}
	p.TotalLevel = total
	if len(p.Domains) > 0 {
		p.AverageLevel = float64(total) / float64(len(p.Domains))
	}

	// Most recent activities first.
	recent := append([]Activity(nil), rec.ActivityLog...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > e.recentActivities {
		recent = recent[:e.recentActivities]
	}
	for i := range recent {
		recent[i].Domains = append([]string(nil), recent[i].Domains...)
	}
	p.RecentActivities = recent

	p.UnviewedInsights = e.unviewedInsightsLocked(userID)

	if set, ok := e.goals.Users[userID]; ok {
		p.ActiveGoals = copyGoals(set.Active)
	}

	return p
}

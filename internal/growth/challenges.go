package growth

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// GetPersonalizedChallenges suggests up to count challenges: one balance
// challenge per lowest-level domain, plus a streak challenge targeting
// the next tier when a streak is running. Unknown users get an empty
// result. count <= 0 takes the engine default.
func (e *Engine) GetPersonalizedChallenges(userID string, count int) []Challenge {
	if count <= 0 {
		count = e.challengeCount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.growth.Users[userID]
	if !ok {
		return nil
	}

	type domainLevel struct {
		name  string
		level int
	}
	ranked := make([]domainLevel, 0, len(Domains))
	for _, d := range Domains {
		if dp := rec.Domains[d]; dp != nil {
			ranked = append(ranked, domainLevel{name: d, level: dp.Level})
		}
	}
	// Stable sort keeps registry order among equal levels.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].level < ranked[j].level
	})

	lowest := ranked
	if len(lowest) > 3 {
		lowest = lowest[:3]
	}

	challenges := make([]Challenge, 0, len(lowest)+1)
	for _, dl := range lowest {
		challenges = append(challenges, Challenge{
			ID:     uuid.NewString(),
			Domain: dl.name,
			Level:  dl.level,
			Title:  fmt.Sprintf("Level up your %s growth", dl.name),
			Description: fmt.Sprintf("Spend time on %s activities this week; you're currently at level %d.",
				dl.name, dl.level),
		})
	}

	if cur := rec.Streak.Current; cur > 0 {
		// Tiers are ascending, so the first strictly greater threshold
		// is the next one. Past the highest tier there is nothing to
		// chase.
		for _, tier := range StreakTiers {
			if tier.Days > cur {
				challenges = append(challenges, Challenge{
					ID:     uuid.NewString(),
					Domain: "consistency",
					Title:  fmt.Sprintf("Reach a %d-day streak", tier.Days),
					Description: fmt.Sprintf("You're on a %d-day streak. Keep going for %d more day(s) to reach %s status.",
						cur, tier.Days-cur, tier.Name),
				})
				break
			}
		}
	}

	if len(challenges) > count {
		challenges = challenges[:count]
	}
	return challenges
}

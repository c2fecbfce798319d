// Package growth implements the progression engine: per-domain XP and
// levels, activity streaks, goal lifecycles, insights and personalized
// challenges, persisted through the store package.
package growth

// Domains is the fixed registry of growth domains. The slice order is the
// deterministic tie-break for profile aggregation and challenge ranking.
var Domains = []string{
	"cognitive",
	"creative",
	"physical",
	"emotional",
	"social",
	"professional",
	"financial",
	"spiritual",
}

// KnownDomain reports whether name is a registered growth domain.
func KnownDomain(name string) bool {
	for _, d := range Domains {
		if d == name {
			return true
		}
	}
	return false
}

// StreakTier names a consistency milestone measured in consecutive days.
type StreakTier struct {
	Name string
	Days int
}

// StreakTiers in ascending day order. Reaching a tier exactly emits a
// streak insight; the next tier above the current streak drives the
// streak challenge.
var StreakTiers = []StreakTier{
	{Name: "beginner", Days: 3},
	{Name: "consistent", Days: 7},
	{Name: "committed", Days: 14},
	{Name: "master", Days: 30},
}

// DomainsForKind maps an interaction kind to the domains it exercises.
// Callers use it to default the domain list when logging an interaction.
var DomainsForKind = map[string][]string{
	"wisdom":       {"cognitive", "spiritual"},
	"creative":     {"creative"},
	"tech":         {"cognitive", "professional"},
	"research":     {"cognitive"},
	"strategy":     {"cognitive", "professional"},
	"wellness":     {"physical", "emotional"},
	"relationship": {"social", "emotional"},
	"financial":    {"financial", "professional"},
}

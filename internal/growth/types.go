package growth

import "time"

// Activity types the engine emits on its own behalf. Callers may log any
// other type string.
const (
	ActivityGoalCreated        = "goal_created"
	ActivityGoalProgress       = "goal_progress"
	ActivityGoalCompleted      = "goal_completed"
	ActivityChallengeCompleted = "challenge_completed"
)

// Insight types.
const (
	InsightLevelUp     = "level_up"
	InsightStreak      = "streak"
	InsightAchievement = "achievement"
)

// DomainProgress tracks one user's standing in a single domain.
// Invariant: XP < Level*100 after every mutation; excess rolls into
// level-ups.
type DomainProgress struct {
	Level               int `json:"level"`
	XP                  int `json:"xp"`
	ChallengesCompleted int `json:"challenges_completed"`
}

// Streak counts consecutive calendar days with at least one activity.
// Invariant: Longest >= Current.
type Streak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// Activity is one logged action. Immutable once appended. Domains keeps
// the full list the caller supplied, including unknown ones; only known
// domains earn XP.
type Activity struct {
	Type        string    `json:"type"`
	Domains     []string  `json:"domains"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Insight is a generated user-facing notification. Viewed is the only
// mutable field and flips false to true only.
type Insight struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Domains   []string  `json:"domains,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Viewed    bool      `json:"viewed"`
}

// GrowthRecord is one user's growth state. Created by InitializeUser,
// mutated only through engine operations.
type GrowthRecord struct {
	Username    string                     `json:"username"`
	Domains     map[string]*DomainProgress `json:"domains"`
	Streak      Streak                     `json:"streak"`
	ActivityLog []Activity                 `json:"activity_log"`

	// Earlier data files carried insights inline on the growth record.
	// The engine now files new insights in the dedicated insight table
	// but keeps this field so old records round-trip untouched.
	Insights []Insight `json:"insights,omitempty"`
}

// Milestone is a sub-step of a goal. Title and Description are
// caller-supplied and opaque to the engine.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Goal is a trackable objective. A goal lives in exactly one partition of
// its GoalSet at a time.
type Goal struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Domain      string      `json:"domain"`
	CreatedAt   time.Time   `json:"created_at"`
	TargetDate  *time.Time  `json:"target_date,omitempty"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	AbandonedAt *time.Time  `json:"abandoned_at,omitempty"`
	Progress    int         `json:"progress"`
	Milestones  []Milestone `json:"milestones,omitempty"`
}

// GoalSet partitions one user's goals by lifecycle state.
type GoalSet struct {
	Active    []*Goal `json:"active_goals"`
	Completed []*Goal `json:"completed_goals"`
	Abandoned []*Goal `json:"abandoned_goals"`
}

// Profile is the read-only projection returned by GetProfile.
type Profile struct {
	UserID           string                    `json:"user_id"`
	Username         string                    `json:"username"`
	Domains          map[string]DomainProgress `json:"domains"`
	TotalLevel       int                       `json:"total_level"`
	AverageLevel     float64                   `json:"average_level"`
	HighestDomain    string                    `json:"highest_domain"`
	Streak           Streak                    `json:"streak"`
	RecentActivities []Activity                `json:"recent_activities"`
	UnviewedInsights []Insight                 `json:"unviewed_insights"`
	ActiveGoals      []Goal                    `json:"active_goals"`
}

// Challenge is a generated suggestion targeting a weak domain or the next
// streak tier.
type Challenge struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	Level       int    `json:"level,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

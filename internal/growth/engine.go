package growth

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"ascent/internal/logging"
	"ascent/internal/store"
)

const schemaVersion = "1"

// Table names inside the store.
const (
	tableGrowth   = "growth"
	tableGoals    = "goals"
	tableInsights = "insights"
)

type growthTable struct {
	Version string                   `json:"version"`
	Users   map[string]*GrowthRecord `json:"users"`
}

type goalTable struct {
	Users map[string]*GoalSet `json:"users"`
}

type insightSet struct {
	Insights []Insight `json:"insights"`
}

type insightTable struct {
	Users map[string]*insightSet `json:"users"`
}

// Params tunes the engine. Zero values take the defaults.
type Params struct {
	// XP added to every known domain per logged activity. Default 10.
	XPPerActivity int

	// Activities carried on a profile. Default 10.
	RecentActivityCount int

	// Challenges returned when the caller does not ask for a count.
	// Default 3.
	ChallengeCount int
}

// Engine owns the three progression tables and is their only writer.
// Construct one per process with NewEngine and share it by reference;
// operations are safe for concurrent use.
type Engine struct {
	store *store.Store

	// locks serializes read-modify-write operations per user so
	// concurrent calls for the same user never lose updates. The table
	// mutex below additionally guards the in-memory tables and their
	// whole-file persistence; table-granularity locking on save is a
	// deliberate simplification for this workload, not an oversight.
	locks userLocks
	mu    sync.Mutex

	growth   growthTable
	goals    goalTable
	insights insightTable

	xpPerActivity    int
	recentActivities int
	challengeCount   int

	// now is swappable for streak tests
	now func() time.Time
}

// NewEngine loads the three tables from st and returns a ready engine.
// Unreadable tables degrade to empty: a corrupt or missing store must not
// prevent a session from starting.
func NewEngine(st *store.Store, p Params) *Engine {
	if p.XPPerActivity <= 0 {
		p.XPPerActivity = 10
	}
	if p.RecentActivityCount <= 0 {
		p.RecentActivityCount = 10
	}
	if p.ChallengeCount <= 0 {
		p.ChallengeCount = 3
	}

	e := &Engine{
		store:            st,
		xpPerActivity:    p.XPPerActivity,
		recentActivities: p.RecentActivityCount,
		challengeCount:   p.ChallengeCount,
		now:              time.Now,
	}
	e.loadTables()
	return e
}

func (e *Engine) loadTables() {
	if err := e.store.Load(tableGrowth, &e.growth); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.EngineError("Growth table unreadable, starting empty: %v", err)
		}
		e.growth = growthTable{}
	}
	if e.growth.Version == "" {
		e.growth.Version = schemaVersion
	}
	if e.growth.Users == nil {
		e.growth.Users = make(map[string]*GrowthRecord)
	}
	for id, rec := range e.growth.Users {
		if rec == nil {
			delete(e.growth.Users, id)
			continue
		}
		rec.normalize()
	}

	if err := e.store.Load(tableGoals, &e.goals); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.EngineError("Goal table unreadable, starting empty: %v", err)
		}
		e.goals = goalTable{}
	}
	if e.goals.Users == nil {
		e.goals.Users = make(map[string]*GoalSet)
	}

	if err := e.store.Load(tableInsights, &e.insights); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.EngineError("Insight table unreadable, starting empty: %v", err)
		}
		e.insights = insightTable{}
	}
	if e.insights.Users == nil {
		e.insights.Users = make(map[string]*insightSet)
	}

	logging.Engine("Loaded tables: %d growth records, %d goal sets, %d insight sets",
		len(e.growth.Users), len(e.goals.Users), len(e.insights.Users))
}

// normalize fills defaults for fields missing or out of range in stored
// records, so old or hand-edited data never crashes the engine.
func (r *GrowthRecord) normalize() {
	if r.Domains == nil {
		r.Domains = make(map[string]*DomainProgress, len(Domains))
	}
	for _, d := range Domains {
		dp := r.Domains[d]
		if dp == nil {
			dp = &DomainProgress{Level: 1}
			r.Domains[d] = dp
			continue
		}
		if dp.Level < 1 {
			dp.Level = 1
		}
		if dp.XP < 0 {
			dp.XP = 0
		}
	}
	if r.Streak.Current < 0 {
		r.Streak.Current = 0
	}
	if r.Streak.Longest < r.Streak.Current {
		r.Streak.Longest = r.Streak.Current
	}
}

// Persistence failures are logged and swallowed: growth tracking degrades
// silently rather than blocking the caller, and the in-memory state stays
// authoritative for the rest of the process.

func (e *Engine) persistGrowth() {
	if err := e.store.Save(tableGrowth, &e.growth); err != nil {
		logging.EngineError("Growth table save failed, continuing in memory: %v", err)
	}
}

func (e *Engine) persistGoals() {
	if err := e.store.Save(tableGoals, &e.goals); err != nil {
		logging.EngineError("Goal table save failed, continuing in memory: %v", err)
	}
}

func (e *Engine) persistInsights() {
	if err := e.store.Save(tableInsights, &e.insights); err != nil {
		logging.EngineError("Insight table save failed, continuing in memory: %v", err)
	}
}

// InitializeUser creates the growth record and goal set for a user the
// first time the ID is seen. Calling it again is a no-op.
func (e *Engine) InitializeUser(userID, username string) {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.growth.Users[userID]; !ok {
		rec := &GrowthRecord{
			Username: username,
			Domains:  make(map[string]*DomainProgress, len(Domains)),
		}
		for _, d := range Domains {
			rec.Domains[d] = &DomainProgress{Level: 1}
		}
		e.growth.Users[userID] = rec
		e.persistGrowth()
		logging.Engine("Initialized growth record for user %s (%s)", userID, username)
	}

	if _, ok := e.goals.Users[userID]; !ok {
		e.goals.Users[userID] = &GoalSet{}
		e.persistGoals()
	}
}

// LogActivity records one activity for the user, awards XP to every known
// domain in domains, resolves level-ups and advances the streak. Returns
// false if the user was never initialized.
func (e *Engine) LogActivity(userID, activityType string, domains []string, description string) bool {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.logActivityLocked(userID, activityType, domains, description)
}

// logActivityLocked is the body of LogActivity for callers that already
// hold the user and table locks (the goal lifecycle reuses it).
func (e *Engine) logActivityLocked(userID, activityType string, domains []string, description string) bool {
	rec, ok := e.growth.Users[userID]
	if !ok {
		logging.EngineDebug("LogActivity for unknown user %s ignored", userID)
		return false
	}

	now := e.now()

	// The activity record keeps the caller's full domain list; only
	// known domains earn XP below.
	rec.ActivityLog = append(rec.ActivityLog, Activity{
		Type:        activityType,
		Domains:     append([]string(nil), domains...),
		Description: description,
		Timestamp:   now,
	})

	for _, d := range domains {
		dp, known := rec.Domains[d]
		if !known {
			continue
		}
		dp.XP += e.xpPerActivity
		if activityType == ActivityChallengeCompleted {
			dp.ChallengesCompleted++
		}
		// Roll excess XP into level-ups, possibly several in one call.
		// The threshold uses the level before each increment.
		for dp.XP >= dp.Level*100 {
			dp.XP -= dp.Level * 100
			dp.Level++
			e.addInsightLocked(userID, InsightLevelUp,
				fmt.Sprintf("You've reached level %d in %s!", dp.Level, d), []string{d})
			logging.Engine("User %s reached level %d in %s", userID, dp.Level, d)
		}
	}

	e.updateStreakLocked(userID, rec, now)
	e.persistGrowth()
	return true
}

// updateStreakLocked advances the calendar-day streak. Evaluated once per
// LogActivity call regardless of how many domains were touched.
func (e *Engine) updateStreakLocked(userID string, rec *GrowthRecord, now time.Time) {
	st := &rec.Streak

	if st.LastActivity == nil {
		st.Current = 1
	} else {
		switch gap := calendarDaysBetween(*st.LastActivity, now); {
		case gap == 1:
			st.Current++
			for _, tier := range StreakTiers {
				if st.Current == tier.Days {
					e.addInsightLocked(userID, InsightStreak,
						fmt.Sprintf("You've reached %s status with a %d-day streak!", tier.Name, tier.Days), nil)
					logging.Engine("User %s reached streak tier %s (%d days)", userID, tier.Name, tier.Days)
					break
				}
			}
		case gap > 1:
			logging.EngineDebug("User %s streak broken after %d days", userID, st.Current)
			st.Current = 1
		default:
			// Same calendar day: the counter is idempotent.
		}
	}

	if st.Current > st.Longest {
		st.Longest = st.Current
	}

	ts := now
	st.LastActivity = &ts
}

// calendarDaysBetween counts whole calendar days from a to b, ignoring the
// time of day. Same day is 0, the next day is 1.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// userLocks hands out one mutex per user ID. Entries are never removed;
// the population is bounded by the user count.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the per-user mutex and returns its unlock func.
func (u *userLocks) lock(userID string) func() {
	u.mu.Lock()
	if u.locks == nil {
		u.locks = make(map[string]*sync.Mutex)
	}
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	u.mu.Unlock()

	l.Lock()
	return l.Unlock
}

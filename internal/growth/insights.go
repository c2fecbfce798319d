package growth

import (
	"github.com/google/uuid"

	"ascent/internal/logging"
)

// AddInsight appends an insight for the user and returns its ID. The
// insight list is created lazily: unlike growth records, insight storage
// does not require InitializeUser to have run.
func (e *Engine) AddInsight(userID, insightType, content string, domains []string) string {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.addInsightLocked(userID, insightType, content, domains)
}

func (e *Engine) addInsightLocked(userID, insightType, content string, domains []string) string {
	set, ok := e.insights.Users[userID]
	if !ok {
		set = &insightSet{}
		e.insights.Users[userID] = set
	}

	ins := Insight{
		ID:        uuid.NewString(),
		Type:      insightType,
		Content:   content,
		Domains:   append([]string(nil), domains...),
		CreatedAt: e.now(),
	}
	set.Insights = append(set.Insights, ins)
	e.persistInsights()

	logging.InsightsDebug("Added %s insight %s for user %s", insightType, ins.ID, userID)
	return ins.ID
}

// Insights returns copies of all the user's insights in creation order,
// viewed or not.
func (e *Engine) Insights(userID string) []Insight {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.insights.Users[userID]
	if !ok {
		return nil
	}
	return append([]Insight(nil), set.Insights...)
}

// UnviewedInsights returns copies of the user's unviewed insights in
// creation order.
func (e *Engine) UnviewedInsights(userID string) []Insight {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.unviewedInsightsLocked(userID)
}

func (e *Engine) unviewedInsightsLocked(userID string) []Insight {
	set, ok := e.insights.Users[userID]
	if !ok {
		return nil
	}
	var out []Insight
	for _, ins := range set.Insights {
		if !ins.Viewed {
			out = append(out, ins)
		}
	}
	return out
}

// MarkInsightsViewed flips the named insights to viewed and returns how
// many actually changed. With no IDs it marks every unviewed insight.
func (e *Engine) MarkInsightsViewed(userID string, ids ...string) int {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.insights.Users[userID]
	if !ok {
		return 0
	}

	var requested map[string]bool
	if len(ids) > 0 {
		requested = make(map[string]bool, len(ids))
		for _, id := range ids {
			requested[id] = true
		}
	}

	changed := 0
	for i := range set.Insights {
		ins := &set.Insights[i]
		if ins.Viewed {
			continue
		}
		if requested != nil && !requested[ins.ID] {
			continue
		}
		ins.Viewed = true
		changed++
	}

	if changed > 0 {
		e.persistInsights()
		logging.Insights("User %s viewed %d insight(s)", userID, changed)
	}
	return changed
}

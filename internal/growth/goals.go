package growth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ascent/internal/logging"
)

// CreateGoal inserts a new goal into the user's active partition and logs
// a goal_created activity for its domain. Returns the goal ID, or false
// if the user was never initialized. A zero targetDate means no target.
func (e *Engine) CreateGoal(userID, title, description, domain string, targetDate time.Time, milestones []Milestone) (string, bool) {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.goals.Users[userID]
	if !ok {
		logging.GoalsDebug("CreateGoal for unknown user %s ignored", userID)
		return "", false
	}

	goal := &Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Domain:      domain,
		CreatedAt:   e.now(),
		Milestones:  append([]Milestone(nil), milestones...),
	}
	if !targetDate.IsZero() {
		td := targetDate
		goal.TargetDate = &td
	}
	for i := range goal.Milestones {
		if goal.Milestones[i].ID == "" {
			goal.Milestones[i].ID = uuid.NewString()
		}
	}

	set.Active = append(set.Active, goal)
	e.persistGoals()
	logging.Goals("User %s created goal %s (%s)", userID, goal.ID, title)

	// Creating a goal is itself a trackable activity.
	e.logActivityLocked(userID, ActivityGoalCreated, []string{domain},
		fmt.Sprintf("Created goal: %s", title))

	return goal.ID, true
}

// UpdateGoalProgress sets a goal's progress, marks the given milestones
// completed and runs the completion transition when progress reaches 100.
// Only goals in the active partition are updatable; anything else returns
// false. Progress is clamped to at most 100. The lower bound is
// intentionally left unclamped: a caller-supplied negative value is
// stored as given.
func (e *Engine) UpdateGoalProgress(userID, goalID string, progress int, completedMilestoneIDs []string) bool {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.goals.Users[userID]
	if !ok {
		logging.GoalsDebug("UpdateGoalProgress for unknown user %s ignored", userID)
		return false
	}

	idx := -1
	for i, g := range set.Active {
		if g.ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		logging.GoalsDebug("Goal %s not active for user %s", goalID, userID)
		return false
	}
	goal := set.Active[idx]

	if progress > 100 {
		progress = 100
	}
	previous := goal.Progress
	goal.Progress = progress

	if len(completedMilestoneIDs) > 0 {
		requested := make(map[string]bool, len(completedMilestoneIDs))
		for _, id := range completedMilestoneIDs {
			requested[id] = true
		}
		for i := range goal.Milestones {
			m := &goal.Milestones[i]
			// Unknown IDs are ignored; completed ones stay untouched.
			if requested[m.ID] && !m.Completed {
				m.Completed = true
				ts := e.now()
				m.CompletedAt = &ts
			}
		}
	}

	switch {
	case goal.Progress >= 100:
		goal.Completed = true
		ts := e.now()
		goal.CompletedAt = &ts
		set.Active = append(set.Active[:idx], set.Active[idx+1:]...)
		set.Completed = append(set.Completed, goal)
		logging.Goals("User %s completed goal %s (%s)", userID, goal.ID, goal.Title)

		e.logActivityLocked(userID, ActivityGoalCompleted, []string{goal.Domain},
			fmt.Sprintf("Completed goal: %s", goal.Title))
		e.addInsightLocked(userID, InsightAchievement,
			fmt.Sprintf("You've achieved your goal: %s!", goal.Title), []string{goal.Domain})

	case goal.Progress > previous:
		e.logActivityLocked(userID, ActivityGoalProgress, []string{goal.Domain},
			fmt.Sprintf("Made %d%% progress on goal: %s", goal.Progress-previous, goal.Title))

	default:
		// No increase: the stored value still changes, but a regression
		// or no-op update produces no growth signal.
	}

	e.persistGoals()
	return true
}

// AbandonGoal moves an active goal to the abandoned partition. Returns
// false if the user or the goal is unknown.
func (e *Engine) AbandonGoal(userID, goalID string) bool {
	unlock := e.locks.lock(userID)
	defer unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.goals.Users[userID]
	if !ok {
		return false
	}

	for i, g := range set.Active {
		if g.ID == goalID {
			ts := e.now()
			g.AbandonedAt = &ts
			set.Active = append(set.Active[:i], set.Active[i+1:]...)
			set.Abandoned = append(set.Abandoned, g)
			e.persistGoals()
			logging.Goals("User %s abandoned goal %s (%s)", userID, g.ID, g.Title)
			return true
		}
	}

	logging.GoalsDebug("Goal %s not active for user %s", goalID, userID)
	return false
}

// Goals returns deep copies of the user's goal partitions for display.
func (e *Engine) Goals(userID string) (active, completed, abandoned []Goal, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.goals.Users[userID]
	if !ok {
		return nil, nil, nil, false
	}
	return copyGoals(set.Active), copyGoals(set.Completed), copyGoals(set.Abandoned), true
}

func copyGoals(goals []*Goal) []Goal {
	if goals == nil {
		return nil
	}
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		c := *g
		c.Milestones = append([]Milestone(nil), g.Milestones...)
		out = append(out, c)
	}
	return out
}

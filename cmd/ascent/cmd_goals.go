package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ascent/internal/growth"
)

var (
	goalDescription string
	goalDomain      string
	goalTarget      string
	goalMilestones  []string
	goalDone        []string
)

// goalCmd groups the goal lifecycle commands
var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Create and track goals",
}

var goalNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new goal",
	Long: `Creates a goal in one of the growth domains. Milestones are optional
sub-steps you can check off as progress.

Example:
  ascent goal new "Run a 10k" --domain physical --target 2026-12-31 \
    --milestone "Run 3k" --milestone "Run 5k"`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalNew,
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress [goal-id] [percent]",
	Short: "Update a goal's progress",
	Long: `Sets the goal's progress percentage. Reaching 100 completes the goal.
Pass --done with milestone IDs to check milestones off at the same time.`,
	Args: cobra.ExactArgs(2),
	RunE: runGoalProgress,
}

var goalAbandonCmd = &cobra.Command{
	Use:   "abandon [goal-id]",
	Short: "Abandon an active goal",
	RunE:  runGoalAbandon,
	Args:  cobra.ExactArgs(1),
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals by lifecycle state",
	RunE:  runGoalList,
}

func runGoalNew(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	if !growth.KnownDomain(goalDomain) {
		return fmt.Errorf("unknown domain %q", goalDomain)
	}

	var target time.Time
	if goalTarget != "" {
		target, err = time.Parse("2006-01-02", goalTarget)
		if err != nil {
			return fmt.Errorf("invalid target date %q (want YYYY-MM-DD)", goalTarget)
		}
	}

	milestones := make([]growth.Milestone, 0, len(goalMilestones))
	for _, title := range goalMilestones {
		milestones = append(milestones, growth.Milestone{Title: title})
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	goalID, ok := engine.CreateGoal(user.UserID, args[0], goalDescription, goalDomain, target, milestones)
	if !ok {
		return fmt.Errorf("user not initialized; run 'ascent init' first")
	}

	fmt.Println(successStyle.Render("Goal created: " + args[0]))
	fmt.Println(dimStyle.Render("ID: " + goalID))
	return nil
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	percent, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid percent %q", args[1])
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	if !engine.UpdateGoalProgress(user.UserID, args[0], percent, goalDone) {
		return fmt.Errorf("no active goal with ID %s", args[0])
	}

	if percent >= 100 {
		fmt.Println(successStyle.Render("Goal completed! 🎉"))
	} else {
		fmt.Printf("%s %s\n", renderBar(percent, 20), dimStyle.Render(fmt.Sprintf("%d%%", percent)))
	}
	return nil
}

func runGoalAbandon(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	if !engine.AbandonGoal(user.UserID, args[0]) {
		return fmt.Errorf("no active goal with ID %s", args[0])
	}

	fmt.Println(dimStyle.Render("Goal abandoned."))
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	active, completed, abandoned, ok := engine.Goals(user.UserID)
	if !ok {
		return fmt.Errorf("user not initialized; run 'ascent init' first")
	}

	printGoalSection("Active", active, true)
	printGoalSection("Completed", completed, false)
	printGoalSection("Abandoned", abandoned, false)
	return nil
}

func printGoalSection(header string, goals []growth.Goal, showProgress bool) {
	fmt.Println(sectionStyle.Render(fmt.Sprintf("%s (%d)", header, len(goals))))
	if len(goals) == 0 {
		fmt.Println(dimStyle.Render("  none"))
		return
	}
	for _, g := range goals {
		line := fmt.Sprintf("  %s [%s]", g.Title, g.Domain)
		if showProgress {
			line += fmt.Sprintf("  %s %d%%", renderBar(g.Progress, 12), g.Progress)
		}
		fmt.Println(line)
		fmt.Println(dimStyle.Render("    " + g.ID))
		for _, m := range g.Milestones {
			mark := "[ ]"
			if m.Completed {
				mark = "[x]"
			}
			fmt.Println(dimStyle.Render(fmt.Sprintf("    %s %s (%s)", mark, m.Title, m.ID)))
		}
	}
}

func init() {
	goalNewCmd.Flags().StringVar(&goalDescription, "desc", "", "Goal description")
	goalNewCmd.Flags().StringVar(&goalDomain, "domain", "", "Growth domain (required)")
	goalNewCmd.Flags().StringVar(&goalTarget, "target", "", "Target date, YYYY-MM-DD")
	goalNewCmd.Flags().StringArrayVar(&goalMilestones, "milestone", nil, "Milestone title (repeatable)")
	_ = goalNewCmd.MarkFlagRequired("domain")

	goalProgressCmd.Flags().StringSliceVar(&goalDone, "done", nil, "Milestone IDs to mark completed")

	goalCmd.AddCommand(goalNewCmd)
	goalCmd.AddCommand(goalProgressCmd)
	goalCmd.AddCommand(goalAbandonCmd)
	goalCmd.AddCommand(goalListCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ascent/internal/growth"
)

// dashboardCmd renders the growth overview
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your growth dashboard",
	Long: `Renders the full picture: level and XP per domain, streak state, active
goals and any unviewed insights.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	p := engine.GetProfile(user.UserID)
	if p == nil {
		return fmt.Errorf("user not initialized; run 'ascent init' first")
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("⛰  %s's Growth Dashboard", p.Username)))
	fmt.Println()

	fmt.Println(sectionStyle.Render("Domains"))
	for _, d := range growth.Domains {
		dp, ok := p.Domains[d]
		if !ok {
			continue
		}
		// XP toward the next level as a percentage of the threshold
		pct := 0
		if threshold := dp.Level * 100; threshold > 0 {
			pct = dp.XP * 100 / threshold
		}
		marker := "  "
		if d == p.HighestDomain {
			marker = warnStyle.Render("▲ ")
		}
		fmt.Printf("%s%-13s L%-2d %s %s\n",
			marker, d, dp.Level, renderBar(pct, 16),
			dimStyle.Render(fmt.Sprintf("%d/%d xp", dp.XP, dp.Level*100)))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("  total level %d, average %.1f", p.TotalLevel, p.AverageLevel)))
	fmt.Println()

	fmt.Println(sectionStyle.Render("Streak"))
	fmt.Printf("  current %d day(s), longest %d\n", p.Streak.Current, p.Streak.Longest)
	fmt.Println()

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Active goals (%d)", len(p.ActiveGoals))))
	if len(p.ActiveGoals) == 0 {
		fmt.Println(dimStyle.Render("  none - create one with 'ascent goal new'"))
	}
	for _, g := range p.ActiveGoals {
		fmt.Printf("  %s [%s]  %s %d%%\n", g.Title, g.Domain, renderBar(g.Progress, 12), g.Progress)
	}
	fmt.Println()

	if len(p.UnviewedInsights) > 0 {
		fmt.Println(sectionStyle.Render(fmt.Sprintf("Insights (%d unviewed)", len(p.UnviewedInsights))))
		for _, ins := range p.UnviewedInsights {
			fmt.Println(warnStyle.Render("  ★ " + ins.Content))
		}
		fmt.Println()
	}

	if len(p.RecentActivities) > 0 {
		fmt.Println(sectionStyle.Render("Recent activity"))
		for _, a := range p.RecentActivities {
			fmt.Printf("  %s  %s %s\n",
				dimStyle.Render(a.Timestamp.Format("Jan 02 15:04")),
				a.Type,
				dimStyle.Render(a.Description))
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	insightsAll        bool
	insightsMarkViewed bool
)

// insightsCmd lists unviewed insights
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show unviewed insights",
	Long: `Lists the insights you have not seen yet: level-ups, streak milestones
and achievements. Pass --mark-viewed to clear them after reading, or
--all to include insights you have already seen.`,
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}

	insights := engine.UnviewedInsights(user.UserID)
	if insightsAll {
		insights = engine.Insights(user.UserID)
	}
	if len(insights) == 0 {
		fmt.Println(dimStyle.Render("No new insights. Keep logging activities!"))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Insights (%d)", len(insights))))
	for _, ins := range insights {
		mark := "★"
		if ins.Viewed {
			mark = dimStyle.Render("·")
		}
		fmt.Printf("%s %s %s\n", mark, ins.Content, dimStyle.Render("("+ins.Type+", "+ins.CreatedAt.Format("Jan 02")+")"))
	}

	if insightsMarkViewed {
		n := engine.MarkInsightsViewed(user.UserID)
		fmt.Println(dimStyle.Render(fmt.Sprintf("Marked %d insight(s) as viewed.", n)))
	}
	return nil
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsAll, "all", false, "Include insights already viewed")
	insightsCmd.Flags().BoolVar(&insightsMarkViewed, "mark-viewed", false, "Mark the listed insights as viewed")
}

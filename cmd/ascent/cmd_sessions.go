package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsLimit int

// sessionsCmd lists recent session history
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent session history",
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	sessions, err := openSessions()
	if err != nil {
		return err
	}
	defer sessions.Close()

	limit := sessionsLimit
	if limit <= 0 {
		limit = cfg.Session.HistoryLimit
	}
	interactions, err := sessions.RecentInteractions(user.UserID, limit)
	if err != nil {
		return err
	}
	if len(interactions) == 0 {
		fmt.Println(dimStyle.Render("No session history yet."))
		return nil
	}

	fmt.Println(titleStyle.Render("Recent sessions"))
	lastDay := ""
	for _, in := range interactions {
		day := in.CreatedAt.Format("2006-01-02")
		if day != lastDay {
			fmt.Println(sectionStyle.Render(day))
			lastDay = day
		}
		fmt.Printf("  %s  %-14s %s\n",
			dimStyle.Render(in.CreatedAt.Format("15:04")),
			in.Kind,
			in.Summary)
	}
	return nil
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "How many interactions to show (default from config)")
}

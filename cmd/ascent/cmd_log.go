package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ascent/internal/growth"
)

var (
	logDomains []string
	logMessage string
)

// logCmd records an activity and awards XP
var logCmd = &cobra.Command{
	Use:   "log [kind]",
	Short: "Log an activity and earn XP in its domains",
	Long: `Records one activity. The kind decides which domains earn XP: either a
known interaction kind (wisdom, creative, tech, research, strategy,
wellness, relationship, financial) with its preset domains, or any label
combined with explicit --domains.

Examples:
  ascent log wellness --message "morning run"
  ascent log reading --domains cognitive --message "finished chapter 4"`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	kind := args[0]

	user, err := currentUser()
	if err != nil {
		return err
	}

	domains := logDomains
	if len(domains) == 0 {
		preset, ok := growth.DomainsForKind[kind]
		if !ok {
			kinds := make([]string, 0, len(growth.DomainsForKind))
			for k := range growth.DomainsForKind {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			return fmt.Errorf("unknown kind %q: use one of %s or pass --domains", kind, strings.Join(kinds, ", "))
		}
		domains = preset
	}

	description := logMessage
	if description == "" {
		description = fmt.Sprintf("Logged a %s activity", kind)
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	if !engine.LogActivity(user.UserID, kind, domains, description) {
		return fmt.Errorf("user not initialized; run 'ascent init' first")
	}

	// Session history is best-effort; the XP is already in.
	if sessions, err2 := openSessions(); err2 == nil {
		if err2 := sessions.RecordInteraction(user.UserID, kind, description, time.Now()); err2 != nil {
			logger.Warn("failed to record interaction", zap.Error(err2))
		}
		sessions.Close()
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Logged %s activity for %s", kind, strings.Join(domains, ", "))))

	if p := engine.GetProfile(user.UserID); p != nil {
		fmt.Println(dimStyle.Render(fmt.Sprintf("Streak: %d day(s) (longest %d)", p.Streak.Current, p.Streak.Longest)))
		for _, ins := range p.UnviewedInsights {
			fmt.Println(warnStyle.Render("★ " + ins.Content))
		}
	}
	return nil
}

func init() {
	logCmd.Flags().StringSliceVarP(&logDomains, "domains", "d", nil, "Domains to credit (overrides the kind's preset)")
	logCmd.Flags().StringVarP(&logMessage, "message", "m", "", "Activity description")
}

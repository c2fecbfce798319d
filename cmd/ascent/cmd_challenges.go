package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var challengeCount int

// challengesCmd suggests personalized challenges
var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Get personalized challenges for your weakest domains",
	Long: `Suggests challenges targeting your lowest-level domains, plus a streak
challenge when a streak is running. Complete one and log it with:
  ascent log challenge_completed --domains <domain>`,
	RunE: runChallenges,
}

func runChallenges(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	challenges := engine.GetPersonalizedChallenges(user.UserID, challengeCount)
	if len(challenges) == 0 {
		return fmt.Errorf("user not initialized; run 'ascent init' first")
	}

	fmt.Println(titleStyle.Render("Your challenges"))
	for i, c := range challenges {
		fmt.Printf("%d. %s %s\n", i+1, sectionStyle.Render(c.Title), dimStyle.Render("["+c.Domain+"]"))
		fmt.Println("   " + c.Description)
	}
	return nil
}

func init() {
	challengesCmd.Flags().IntVarP(&challengeCount, "count", "n", 0, "How many challenges to show (default from config)")
}

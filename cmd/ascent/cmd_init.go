package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ascent/internal/config"
	"ascent/internal/session"
)

// initCmd creates the local user and their growth record
var initCmd = &cobra.Command{
	Use:   "init [username]",
	Short: "Create your profile and start tracking growth",
	Long: `Creates the local user identity, the growth record with all domains at
level 1, and an empty goal set. Running init again for an existing
profile is safe and changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	username := args[0]

	userPath := config.DefaultUserConfigPath(cfg.Data.Dir)
	user, err := config.LoadUserConfig(userPath)
	if err != nil {
		return err
	}

	created := false
	if user.UserID == "" {
		user.UserID = uuid.NewString()
		user.Username = username
		if err := user.Save(userPath); err != nil {
			return err
		}
		created = true
	}

	engine, err := openEngine()
	if err != nil {
		return err
	}
	engine.InitializeUser(user.UserID, user.Username)

	sessions, err := openSessions()
	if err != nil {
		return err
	}
	defer sessions.Close()

	now := time.Now()
	lastSeen, seen, err := sessions.LastSeen(user.UserID)
	if err != nil {
		logger.Warn("session history unavailable", zap.Error(err))
	}
	fmt.Println(titleStyle.Render(session.Greeting(user.Username, lastSeen, now, !seen)))

	if created {
		fmt.Println(successStyle.Render("Profile created."))
		fmt.Println(dimStyle.Render("Log your first activity with: ascent log <kind>"))
	} else {
		fmt.Println(dimStyle.Render(fmt.Sprintf("Profile for %s already exists.", user.Username)))
	}
	return nil
}

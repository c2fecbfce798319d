package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ascent/internal/config"
	"ascent/internal/growth"
	"ascent/internal/logging"
	"ascent/internal/session"
	"ascent/internal/store"
)

var (
	// Global flags
	verbose bool
	dataDir string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ascent",
	Short: "Ascent - personal growth tracker",
	Long: `Ascent tracks your growth across eight life domains: log activities to
earn XP and levels, keep daily streaks alive, work toward goals and get
personalized challenges.

Start with 'ascent init <username>', then log activities with
'ascent log'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.Data.Dir = dataDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logging.Initialize(cfg.Data.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// configPath resolves the config file location. The data dir flag moves
// the config with it.
func configPath() string {
	dir := dataDir
	if dir == "" {
		if env := os.Getenv("ASCENT_DATA_DIR"); env != "" {
			dir = env
		} else {
			dir = ".ascent"
		}
	}
	return filepath.Join(dir, "config.yaml")
}

// openEngine builds the progression engine over the configured data dir.
func openEngine() (*growth.Engine, error) {
	st, err := store.New(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	return growth.NewEngine(st, growth.Params{
		XPPerActivity:       cfg.GetXPPerActivity(),
		RecentActivityCount: cfg.GetRecentActivityCount(),
		ChallengeCount:      cfg.GetChallengeCount(),
	}), nil
}

// openSessions opens the session history database.
func openSessions() (*session.Store, error) {
	path := cfg.Session.DatabasePath
	if path == "" {
		path = filepath.Join(cfg.Data.Dir, "sessions.db")
	}
	return session.NewStore(path)
}

// currentUser loads the local user identity; it fails if init never ran.
func currentUser() (*config.UserConfig, error) {
	user, err := config.LoadUserConfig(config.DefaultUserConfigPath(cfg.Data.Dir))
	if err != nil {
		return nil, err
	}
	if user.UserID == "" {
		return nil, fmt.Errorf("no user configured; run 'ascent init <username>' first")
	}
	return user, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default .ascent, or ASCENT_DATA_DIR)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/config"
	"github.com/abhisek/prepcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepcoach",
	Short: "AI interview practice quizzes",
	Long: "PrepCoach generates technical interview quizzes for your industry and skills,\n" +
		"scores your answers and suggests what to study next.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPCOACH_DB)")
	rootCmd.PersistentFlags().String("user", "", "Local user id (overrides PREPCOACH_USER)")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PREPCOACH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// localUser returns the --user flag, falling back to PREPCOACH_USER.
func localUser(cmd *cobra.Command, cfg config.Config) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return cfg.User
}

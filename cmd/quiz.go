package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/app"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/screens/home"
	"github.com/abhisek/prepcoach/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take an interactive quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz and print it without taking it",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, _, err := setupLocal(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		quiz, err := d.quizzes.GenerateQuiz(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				Questions quizgen.Quiz `json:"questions"`
			}{quiz})
		}
		printQuiz(cmd, quiz)
		return nil
	},
}

// runQuiz opens the store, builds dependencies, and launches the TUI.
func runQuiz(cmd *cobra.Command) error {
	d, u, err := setupLocal(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	if !profile.IsOnboarded(u) {
		fmt.Fprintln(os.Stderr, "Your profile has no industry yet, so quizzes are locked.")
		fmt.Fprintln(os.Stderr, "Set one first:  prepcoach profile set --industry <name> [--skills go,sql]")
		fmt.Fprintln(os.Stderr)
	}

	return app.Run(cmd.Context(), app.Options{
		Deps: home.Deps{
			Users:    d.profiles,
			Quizzes:  d.quizzes,
			Recorder: d.assessments,
			History:  d.assessments,
		},
		Status: headerStatus(u),
	})
}

func headerStatus(u *store.User) string {
	name := u.Name
	if name == "" {
		name = u.ExternalID
	}
	if u.Industry == "" {
		return name
	}
	return name + " · " + u.Industry
}

func printQuiz(cmd *cobra.Command, quiz quizgen.Quiz) {
	out := cmd.OutOrStdout()
	for i, q := range quiz {
		fmt.Fprintf(out, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			mark := " "
			if opt == q.CorrectAnswer {
				mark = "*"
			}
			fmt.Fprintf(out, "   %s %c) %s\n", mark, 'A'+j, opt)
		}
		fmt.Fprintf(out, "   %s\n\n", strings.TrimSpace(q.Explanation))
	}
}

func init() {
	quizGenerateCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	quizCmd.AddCommand(quizGenerateCmd)
}

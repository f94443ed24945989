package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/assessment"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, _, err := setupLocal(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		list, err := d.assessments.Assessments(cmd.Context())
		if err != nil {
			return err
		}
		stats := assessment.ComputeStats(list)
		out := cmd.OutOrStdout()

		if asJSON {
			return writeJSON(out, map[string]any{"assessments": list, "stats": stats})
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}

		g := grid{
			headers: []string{"ID", "Taken", "Category", "Questions", "Score", "Tip"},
			numeric: []int{0, 3, 4},
		}
		for _, a := range list {
			tip := "-"
			if a.ImprovementTip != nil {
				tip = truncate(*a.ImprovementTip, 32)
			}
			g.add(strconv.Itoa(a.ID), a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Category,
				strconv.Itoa(len(a.Questions)), fmt.Sprintf("%.0f%%", a.QuizScore), tip)
		}
		g.print(out)
		fmt.Fprintf(out, "\n%d quizzes, average %.0f%%, best %.0f%%, latest %.0f%%\n",
			stats.Assessments, stats.AverageScore, stats.BestScore, stats.LatestScore)
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "Print assessments and stats as JSON")
}

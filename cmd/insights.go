package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/store"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show salary, demand and skill trends for your industry",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, _, err := setupLocal(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		in, err := d.profiles.Insight(cmd.Context())
		if errors.Is(err, profile.ErrNotOnboarded) {
			return errors.New("set your industry first: prepcoach profile set --industry <name>")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, in)
		}
		writeInsight(out, in)
		return nil
	},
}

func writeInsight(out io.Writer, in *store.IndustryInsight) {
	fmt.Fprintf(out, "Industry:     %s\n", in.Industry)
	fmt.Fprintf(out, "Outlook:      %s\n", in.MarketOutlook)
	fmt.Fprintf(out, "Demand:       %s\n", in.DemandLevel)
	fmt.Fprintf(out, "Growth:       %.1f%%\n", in.GrowthRate)
	fmt.Fprintf(out, "Updated:      %s (next %s)\n",
		in.LastUpdated.Local().Format("2006-01-02"), in.NextUpdate.Local().Format("2006-01-02"))

	if len(in.SalaryRanges) > 0 {
		fmt.Fprintln(out)
		g := grid{
			headers: []string{"Role", "Location", "Min", "Median", "Max"},
			numeric: []int{2, 3, 4},
		}
		for _, sr := range in.SalaryRanges {
			g.add(sr.Role, sr.Location, formatSalary(sr.Min), formatSalary(sr.Median), formatSalary(sr.Max))
		}
		g.print(out)
	}

	for _, list := range []struct {
		title string
		items []string
	}{
		{"Top skills", in.TopSkills},
		{"Key trends", in.KeyTrends},
		{"Recommended", in.RecommendedSkills},
	} {
		if len(list.items) > 0 {
			fmt.Fprintf(out, "\n%s:\n  - %s\n", list.title, strings.Join(list.items, "\n  - "))
		}
	}
}

// formatSalary renders a yearly amount in thousands, e.g. 120000 as "120k".
func formatSalary(v float64) string {
	return fmt.Sprintf("%.0fk", v/1000)
}

func init() {
	insightsCmd.Flags().Bool("json", false, "Print the insight as JSON")
}

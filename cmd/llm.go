package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect model calls made for quizzes and tips",
}

// withEvents opens the store and hands its event repo to fn.
func withEvents(cmd *cobra.Command, fn func(ctx context.Context, events store.EventRepo) error) error {
	cfg, log, err := loadBase()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(cmd.Context(), s.EventRepo())
}

func llmQueryOpts(cmd *cobra.Command) store.QueryOpts {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	since, _ := cmd.Flags().GetDuration("since")

	opts := store.QueryOpts{Limit: limit, Purpose: purpose}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	return opts
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		opts := llmQueryOpts(cmd)

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, map[string]any{"events": events})
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			g := grid{
				headers: []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"},
				numeric: []int{0, 4, 5, 6},
			}
			for _, e := range events {
				g.add(strconv.Itoa(e.ID),
					e.Timestamp.Local().Format("01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					mark(e.Success))
			}
			g.print(out)
			return nil
		})
	},
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the captured request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			writeEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

func writeEvent(out io.Writer, e *store.LLMRequestEventRecord) {
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fields := [][2]string{
		{"Event", fmt.Sprintf("#%d (seq %d)", e.ID, e.Sequence)},
		{"When", e.Timestamp.Local().Format(time.RFC1123)},
		{"Call", fmt.Sprintf("%s via %s / %s", e.Purpose, e.Provider, e.Model)},
		{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", (time.Duration(e.LatencyMs) * time.Millisecond).String()},
		{"Status", status},
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-8s %s\n", f[0]+":", f[1])
	}

	body := func(title, text string) {
		if strings.TrimSpace(text) == "" {
			text = "(not captured)"
		}
		fmt.Fprintf(out, "\n── %s %s\n%s\n", title, strings.Repeat("─", 50-len(title)), text)
	}
	body("request", e.RequestBody)
	body("response", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			fmt.Fprintln(out, "Usage by purpose")
			purposeGrid(byPurpose).print(out)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Estimated cost (USD)")
			g, unpriced := costGrid(byModel)
			g.print(out)
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func purposeGrid(usage []store.LLMUsage) *grid {
	g := &grid{
		headers: []string{"Purpose", "Calls", "Input", "Output", "Avg ms"},
		numeric: []int{1, 2, 3, 4},
	}
	var calls, in, outTokens int
	for _, u := range usage {
		g.add(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		outTokens += u.OutputTokens
	}
	g.footer = []string{"total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTokens), ""}
	return g
}

// costGrid prices each model's usage. Models without a known price are
// listed with "?" and returned so the caller can say the total is partial.
func costGrid(usage []store.LLMUsage) (*grid, []string) {
	g := &grid{
		headers: []string{"Model", "Calls", "Input", "Output", "Cost"},
		numeric: []int{1, 2, 3, 4},
	}
	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if price, ok := llm.PriceFor(u.Model); ok {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		g.add(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	g.footer = []string{label, "", "", "", formatCost(total)}
	return g, unpriced
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose ("+llm.PurposeQuizGen+", "+llm.PurposeImprovementTip+" or "+llm.PurposeIndustryInsight+")")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")
	llmListCmd.Flags().Bool("json", false, "Print events as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Show dashboard aggregates",
		Long:          "Show status distribution, maturity distribution, and collection totals.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
	return cmd
}

func runStats(rootOpts *RootOptions, cmd *cobra.Command) error {
	s, cleanup, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	state := s.Snapshot()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d requirement(s), %d capability(ies)\n",
		len(state.Requirements), len(state.Capabilities))
	if len(state.Requirements) == 0 {
		return nil
	}

	agg := state.View.Aggregates

	fmt.Fprintln(out, "\nBy status:")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, sc := range agg.ByStatus {
		fmt.Fprintf(w, "  %s\t%d\t%.1f%%\n", sc.Status, sc.Count, sc.Percent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nBy maturity:")
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, mc := range agg.ByMaturity {
		level := mc.Level
		if level == "" {
			level = "(unset)"
		}
		fmt.Fprintf(w, "  %s\t%d\n", level, mc.Count)
	}
	return w.Flush()
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"compdash/internal/store"
	"compdash/internal/views"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	Status    string
	Category  string
	Priority  string
	Framework string
	Search    string
	Sort      string
	Direction string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requirements",
		Long: `List requirements, optionally filtered, searched, and sorted.

Filter values compose with AND; "all" or an empty value imposes no
constraint on that field.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "filter by priority")
	cmd.Flags().StringVar(&opts.Framework, "framework", "", "filter by framework")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive text search")
	cmd.Flags().StringVar(&opts.Sort, "sort", views.SortByUpdatedAt, "sort field")
	cmd.Flags().StringVar(&opts.Direction, "direction", string(views.Descending), "sort direction (asc|desc)")

	return cmd
}

func runList(rootOpts *RootOptions, opts *ListOptions, cmd *cobra.Command) error {
	s, cleanup, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	filters := map[string]string{
		views.FieldStatus:    opts.Status,
		views.FieldCategory:  opts.Category,
		views.FieldPriority:  opts.Priority,
		views.FieldFramework: opts.Framework,
	}
	if _, err := s.Dispatch(store.SetFilters{Filters: filters}); err != nil {
		return err
	}
	if _, err := s.Dispatch(store.SetSearchTerm{Term: opts.Search}); err != nil {
		return err
	}
	res, err := s.Dispatch(store.SetSort{Field: opts.Sort, Direction: views.Direction(opts.Direction)})
	if err != nil {
		return err
	}

	listed := res.State.View.Requirements
	if len(listed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no requirements match")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRIORITY\tSTATUS\tFRAMEWORK")
	for _, r := range listed {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, r.Category, r.Priority, r.Status, r.Framework)
	}
	return w.Flush()
}

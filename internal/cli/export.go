package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compdash/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the requirement collection as CSV",
		Long: `Export the full requirement collection as CSV to stdout or a file.

The output re-imports losslessly: ids and timestamps are preserved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, cmd *cobra.Command) error {
	s, cleanup, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := s.Dispatch(store.ExportCSV{})
	if err != nil {
		return err
	}

	if opts.Output == "" {
		fmt.Fprint(cmd.OutOrStdout(), res.CSV)
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(res.CSV), 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d requirement(s) to %s\n",
		len(res.State.Requirements), opts.Output)
	return nil
}

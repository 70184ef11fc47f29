package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compdash/internal/store"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import requirements from a CSV file",
		Long: `Import requirements from a CSV file into the collection.

Import is partial-success: valid rows are admitted, invalid rows are
reported per row with a reason and do not abort the batch. Rows without
an id get one minted; rows whose id already exists are rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runImport(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	s, cleanup, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := s.Dispatch(store.ImportCSV{Text: string(data)})
	if err != nil {
		return err
	}
	await(res)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "admitted %d row(s)\n", res.Import.Admitted)
	for _, reject := range res.Import.Rejects {
		fmt.Fprintf(out, "rejected %s\n", reject.Error())
	}
	if res.Import.Admitted == 0 && len(res.Import.Rejects) > 0 {
		return fmt.Errorf("no rows admitted")
	}
	return nil
}

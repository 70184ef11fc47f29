package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"compdash/internal/store"
	"compdash/pkg/schema"
)

// PurgeOptions holds flags for the purge command.
type PurgeOptions struct {
	Confirm string
}

// NewPurgeCommand creates the purge command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurgeOptions{}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Erase all requirements and capabilities",
		Long: fmt.Sprintf(`Erase all requirements and capabilities, in memory and in storage.

The exact confirmation phrase %q must be passed via --confirm.`, schema.PurgeConfirmation),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Confirm, "confirm", "", "confirmation phrase")

	return cmd
}

func runPurge(rootOpts *RootOptions, opts *PurgeOptions, cmd *cobra.Command) error {
	s, cleanup, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := s.Dispatch(store.PurgeAll{Confirmation: opts.Confirm})
	if err != nil {
		return err
	}
	await(res)

	fmt.Fprintln(cmd.OutOrStdout(), "all data erased")
	return nil
}

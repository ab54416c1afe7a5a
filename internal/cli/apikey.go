package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure-ai/client/internal/app"
	"procure-ai/client/internal/notify"
)

// newAPIKeyCmd manages the stored cloud API key.
func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage the stored cloud API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <value>",
		Short: "Store the API key used for cloud models",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(notify.WriterNotifier{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Credentials.Set(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether an API key is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(notify.WriterNotifier{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			key, err := a.Credentials.Get(cmd.Context())
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored; cloud models are unavailable.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "An API key is stored.")
			}
			return nil
		},
	})

	return cmd
}

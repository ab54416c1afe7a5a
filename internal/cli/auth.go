package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure-ai/client/internal/app"
	"procure-ai/client/internal/auth"
	"procure-ai/client/internal/notify"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in against the companion backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(notify.WriterNotifier{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.Auth.Login(cmd.Context(), auth.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the companion backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(notify.WriterNotifier{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.Auth.Register(cmd.Context(), auth.RegisterRequest{
				Name:            name,
				Email:           email,
				Password:        password,
				ConfirmPassword: confirm,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm-password")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "login <userId>",
		Short: "Start an authenticated session; merges the guest cart into the server cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.VM.Login(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "logged in as %s\n", args[0])
			printCart(deps)
			return nil
		},
	}
}

func newLogoutCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the authenticated session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.VM.Logout()
			fmt.Fprintln(deps.Out, "logged out")
			return nil
		},
	}
}

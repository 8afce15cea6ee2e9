package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCommand(deps Dependencies) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out the authenticated cart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := deps.VM.Resume(ctx); err != nil {
				return err
			}
			res, err := deps.VM.Checkout(ctx, address)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "order %s created (%s)\n", res.OrderID, res.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "shipping address")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/view"
)

func newOrdersCommand(deps Dependencies) *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Track your orders.",
	}
	ordersCmd.AddCommand(newOrdersListCommand(deps))
	ordersCmd.AddCommand(newOrdersShowCommand(deps))
	return ordersCmd
}

func newOrdersListCommand(deps Dependencies) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your orders.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := resolveUser(deps.VM, userID)
			if err != nil {
				return err
			}
			orders, err := deps.Orders.OrdersByUser(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(deps.Out, "no orders yet")
				return nil
			}
			for _, o := range orders {
				fmt.Fprintf(deps.Out, "%-38s %-12s $%.2f\n", o.OrderID, o.Status, o.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (defaults to the logged-in user)")
	return cmd
}

func newOrdersShowCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show <orderId>",
		Short: "Show one order.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := deps.Orders.Order(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "order %s  status %s  total $%.2f\n", o.OrderID, o.Status, o.Total)
			for _, it := range o.Items {
				fmt.Fprintf(deps.Out, "  %-12s %-12s x%-3d $%.2f\n",
					it.ProductID, it.MerchantID, it.Quantity, it.PriceSnapshot)
			}
			return nil
		},
	}
}

func resolveUser(vm *view.ViewModel, flagUser string) (string, error) {
	if flagUser != "" {
		return flagUser, nil
	}
	if !vm.Authenticated() {
		return "", fmt.Errorf("not logged in; pass --user or run storefront login")
	}
	return vm.UserID(), nil
}

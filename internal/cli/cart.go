package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCartCommand(deps Dependencies) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the active cart.",
	}
	cartCmd.AddCommand(newCartShowCommand(deps))
	cartCmd.AddCommand(newCartAddCommand(deps))
	cartCmd.AddCommand(newCartUpdateCommand(deps))
	cartCmd.AddCommand(newCartRemoveCommand(deps))
	cartCmd.AddCommand(newCartClearCommand(deps))
	return cartCmd
}

func newCartShowCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active cart with prices and total.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.VM.Resume(cmd.Context()); err != nil {
				return err
			}
			printCart(deps)
			return nil
		},
	}
}

func newCartAddCommand(deps Dependencies) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <productId> <merchantId>",
		Short: "Add a merchant's product to the cart.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := deps.VM.Resume(ctx); err != nil {
				return err
			}
			if err := deps.VM.AddItem(ctx, args[0], args[1], quantity); err != nil {
				return err
			}
			printCart(deps)
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	return cmd
}

func newCartUpdateCommand(deps Dependencies) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <cartItemId>",
		Short: "Set an item's quantity (0 removes it).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := deps.VM.Resume(ctx); err != nil {
				return err
			}
			if err := deps.VM.UpdateQuantity(ctx, args[0], quantity); err != nil {
				return err
			}
			printCart(deps)
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "new quantity")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newCartRemoveCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <cartItemId>",
		Short: "Remove an item from the cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := deps.VM.Resume(ctx); err != nil {
				return err
			}
			if err := deps.VM.RemoveItem(ctx, args[0]); err != nil {
				return err
			}
			printCart(deps)
			return nil
		},
	}
}

func newCartClearCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the local cart state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.VM.ClearLocal()
			fmt.Fprintln(deps.Out, "cart cleared")
			return nil
		},
	}
}

func printCart(deps Dependencies) {
	c := deps.VM.Cart()
	if len(c.Items) == 0 {
		fmt.Fprintln(deps.Out, "cart is empty")
		return
	}

	for _, it := range c.Items {
		fmt.Fprintf(deps.Out, "%-38s %-12s %-12s x%-3d $%.2f\n",
			it.CartItemID, it.ProductID, it.MerchantID, it.Quantity, deps.VM.ItemPrice(it))
	}
	fmt.Fprintf(deps.Out, "%d item(s), total $%.2f\n", deps.VM.ItemCount(), deps.VM.CartTotal())
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

func newOffersCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "offers <productId>",
		Short: "List merchant offers for a product with normalized prices.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, err := deps.Offers.ProductOffers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(offers) == 0 {
				fmt.Fprintln(deps.Out, "no offers for this product")
				return nil
			}
			for _, o := range offers {
				fmt.Fprintf(deps.Out, "%-12s merchant %-12s $%.2f\n",
					o.ID, o.MerchantID, pricing.ExtractPrice(o.Raw))
			}
			return nil
		},
	}
}

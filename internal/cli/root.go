// Package cli wires the cart engine into the terminal storefront commands.
package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/view"
)

// Dependencies carries the wired engine into the command constructors.
type Dependencies struct {
	VM     *view.ViewModel
	Offers *clients.OffersClient
	Orders *clients.OrdersClient
	Out    io.Writer
	Log    zerolog.Logger
}

func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Terminal storefront: browse offers, manage your cart, check out.",
		SilenceUsage: true,
	}

	root.AddCommand(newCartCommand(deps))
	root.AddCommand(newLoginCommand(deps))
	root.AddCommand(newLogoutCommand(deps))
	root.AddCommand(newOffersCommand(deps))
	root.AddCommand(newCheckoutCommand(deps))
	root.AddCommand(newOrdersCommand(deps))
	return root
}

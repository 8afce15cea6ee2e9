package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cli"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/guestcart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/reconcile"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/view"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	gateway := clients.NewClient("gateway", cfg.GatewayURL, httpClient, log)

	cartClient := clients.NewCartClient(gateway)
	offersClient := clients.NewOffersClient(gateway)
	checkoutClient := clients.NewCheckoutClient(gateway)
	ordersClient := clients.NewOrdersClient(gateway)

	store := guestcart.NewStore(cfg.StateDir, log)
	sess := session.Open(cfg.StateDir, log)
	merger := reconcile.New(store, cartClient, log)
	vm := view.New(sess, store, cartClient, offersClient, checkoutClient, merger, log)

	root := cli.NewRootCommand(cli.Dependencies{
		VM:     vm,
		Offers: offersClient,
		Orders: ordersClient,
		Out:    os.Stdout,
		Log:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

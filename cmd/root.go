package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/arkandha/feastly/cart/cmd"
	"github.com/arkandha/feastly/internal/common"
	"github.com/arkandha/feastly/internal/log"
	orderCmd "github.com/arkandha/feastly/order/cmd"
	productCmd "github.com/arkandha/feastly/product/cmd"
	restaurantCmd "github.com/arkandha/feastly/restaurant/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/feastly.log").
		With().
		Str(log.KeyAppName, common.AppMain).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "feastly"}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "order",
			Short: "Run order service",
			Run: func(cmd *cobra.Command, args []string) {
				orderCmd.RunOrderService(cmd.Context())
			},
		},
		{
			Use:   "product",
			Short: "Run product service",
			Run: func(cmd *cobra.Command, args []string) {
				productCmd.RunProductService(cmd.Context())
			},
		},
		{
			Use:   "restaurant",
			Short: "Run restaurant service",
			Run: func(cmd *cobra.Command, args []string) {
				restaurantCmd.RunRestaurantService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}

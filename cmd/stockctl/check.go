package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pauljones0/garden-stock-bot/internal/app"
	"github.com/pauljones0/garden-stock-bot/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one stock check cycle and print its status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context())
	},
}

func runCheck(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	a, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	status, err := a.Processor.CheckStock(ctx)
	fmt.Printf("%s: %s\n", status, status.Message())
	if err != nil {
		return fmt.Errorf("stock check %s: %w", status, err)
	}
	return nil
}

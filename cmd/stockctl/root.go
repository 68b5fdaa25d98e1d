package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pauljones0/garden-stock-bot/internal/catalog"
	"github.com/pauljones0/garden-stock-bot/internal/scraper"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Inspect and run Grow a Garden stock checks",
	Long: `stockctl runs single stock check cycles against the configured
environment, and parses or previews saved fragment files offline.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&catalogPath,
		"catalog",
		"",
		"path to a catalog JSON file (defaults to the embedded catalog)",
	)
	rootCmd.AddCommand(checkCmd, parseCmd, previewCmd)
}

// parseFile loads the catalog and parses a saved fragment file.
func parseFile(path string) (*catalog.Catalog, *scraper.Parser, []string, error) {
	cat, err := catalog.LoadConfig(catalogPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read fragments: %w", err)
	}
	fragments, err := scraper.DecodeFragments(data)
	if err != nil {
		return nil, nil, nil, err
	}
	return cat, scraper.NewParser(cat), fragments, nil
}

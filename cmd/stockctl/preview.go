package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pauljones0/garden-stock-bot/internal/notifier"
)

var previewMentions string

var previewCmd = &cobra.Command{
	Use:   "preview <fragments.json>",
	Short: "Render the webhook payload for a saved fragment file without sending it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, parser, fragments, err := parseFile(args[0])
		if err != nil {
			return err
		}
		renderer := notifier.NewRenderer(cat, strings.Fields(previewMentions))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(renderer.Render(parser.Parse(fragments)))
	},
}

func init() {
	previewCmd.Flags().StringVar(
		&previewMentions,
		"mentions",
		os.Getenv("DISCORD_ROLE_IDS_TO_PING"),
		"space-separated mention tokens to ping for rare items",
	)
}

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <fragments.json>",
	Short: "Parse a saved fragment file and print the snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, parser, fragments, err := parseFile(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(parser.Parse(fragments))
	},
}

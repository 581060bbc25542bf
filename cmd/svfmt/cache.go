package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svfmt/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the formatting cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached formatting result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("svfmt")
		if err != nil {
			return err
		}
		n, err := cache.Clean()
		if err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached results\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}

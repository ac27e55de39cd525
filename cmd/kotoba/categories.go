package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the dataset categories with their number of entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := loadStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			counts := store.CategoryCounts()
			for _, category := range store.Categories() {
				_, _ = fmt.Fprintf(stdout, "%s\t%d\n", category, counts[category])
			}
			_, _ = fmt.Fprintf(stdout, "Total\t%d\n", store.Len())
			return nil
		},
	}
}

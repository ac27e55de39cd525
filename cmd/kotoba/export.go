package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/kotoba/internal/export"
	"github.com/at-ishikawa/kotoba/internal/quiz"
)

const defaultExportPath = "kosakata_filtered.csv"

func newExportCommand() *cobra.Command {
	var (
		categories []string
		query      string
		format     = FormatFlag(export.FormatCSV)
	)

	command := &cobra.Command{
		Use:   "export [output file]",
		Short: "Write the entries matching the category and search filters to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("category") {
				cfg.Study.Categories = categories
			}
			if cmd.Flags().Changed("query") {
				cfg.Study.SearchQuery = query
			}

			outputPath := defaultExportPath
			if len(args) > 0 {
				outputPath = args[0]
			}
			outputFormat := export.Format(format)
			if !cmd.Flags().Changed("format") {
				outputFormat = export.FormatFromPath(outputPath)
			}

			store, err := loadStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			entries := quiz.FilterEntries(store.Entries(), cfg.Study.Categories, cfg.Study.SearchQuery)
			if err := export.WriteFile(outputPath, func(w io.Writer) error {
				return export.WriteEntries(w, outputFormat, entries)
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d entries written to %s\n", len(entries), outputPath)
			return nil
		},
	}

	flags := command.Flags()
	flags.StringSliceVarP(&categories, "category", "c", nil, "Categories to export, or All")
	flags.StringVarP(&query, "query", "q", "", "Only export entries containing this text")
	flags.Var(&format, "format", "Output format. Options: csv, yaml (default from the file extension)")
	return command
}

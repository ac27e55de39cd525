package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/kotoba/internal/cli"
	"github.com/at-ishikawa/kotoba/internal/config"
	"github.com/at-ishikawa/kotoba/internal/export"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/report"
)

// studyFlags override the study block of the configuration when they are set.
type studyFlags struct {
	categories           []string
	searchQuery          string
	shuffle              bool
	mode                 ModeFlag
	direction            DirectionFlag
	optionCount          int
	similarityThreshold  int
	flexibleCheck        bool
	focusUnmemorizedOnly bool
	advance              AdvanceFlag
	markBonus            int
	showRomaji           bool
	seed                 int64
}

func (f *studyFlags) register(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&f.categories, "category", "c", nil, "Categories to study, or All")
	flags.StringVarP(&f.searchQuery, "query", "q", "", "Only study entries containing this text")
	flags.BoolVar(&f.shuffle, "shuffle", true, "Shuffle the cards")
	flags.Var(&f.mode, "mode", "Study mode. Options: flashcard, mcq, typed")
	flags.Var(&f.direction, "direction", "Question direction. Options: phonetic-to-target, roman-to-target, target-to-phonetic")
	flags.IntVar(&f.optionCount, "options", quiz.DefaultOptionCount, "Number of choices in mcq mode")
	flags.IntVar(&f.similarityThreshold, "threshold", quiz.DefaultSimilarityThreshold, "Similarity percentage needed for a typed answer to be correct")
	flags.BoolVar(&f.flexibleCheck, "flexible", true, "Ignore case, punctuation and spacing in typed answers")
	flags.BoolVar(&f.focusUnmemorizedOnly, "focus-unmemorized", false, "Skip entries marked as memorized")
	flags.Var(&f.advance, "advance", "What marking a card does. Options: none, wraparound")
	flags.IntVar(&f.markBonus, "mark-bonus", quiz.DefaultMarkBonus, "Points for marking a card as memorized with --advance wraparound")
	flags.BoolVar(&f.showRomaji, "romaji", true, "Show the romaji hint under phonetic questions")
	flags.Int64Var(&f.seed, "seed", 0, "Random seed, 0 for a time based seed")
}

// apply copies the flags that were set on the command line into cfg.
func (f *studyFlags) apply(flags *pflag.FlagSet, cfg *config.StudyConfig) {
	if flags.Changed("category") {
		cfg.Categories = f.categories
	}
	if flags.Changed("query") {
		cfg.SearchQuery = f.searchQuery
	}
	if flags.Changed("shuffle") {
		cfg.Shuffle = f.shuffle
	}
	if flags.Changed("mode") {
		cfg.Mode = f.mode.String()
	}
	if flags.Changed("direction") {
		cfg.Direction = f.direction.String()
	}
	if flags.Changed("options") {
		cfg.OptionCount = f.optionCount
	}
	if flags.Changed("threshold") {
		cfg.SimilarityThreshold = f.similarityThreshold
	}
	if flags.Changed("flexible") {
		cfg.FlexibleCheck = f.flexibleCheck
	}
	if flags.Changed("focus-unmemorized") {
		cfg.FocusUnmemorizedOnly = f.focusUnmemorizedOnly
	}
	if flags.Changed("advance") {
		cfg.AdvanceOnMark = f.advance.String()
	}
	if flags.Changed("mark-bonus") {
		cfg.MarkBonus = f.markBonus
	}
	if flags.Changed("romaji") {
		cfg.ShowRomaji = f.showRomaji
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
}

// studyOutputs are the files written after the session ends.
type studyOutputs struct {
	report       bool
	pdf          bool
	progressPath string
	historyPath  string
}

func newStudyCommand() *cobra.Command {
	var (
		overrides studyFlags
		outputs   studyOutputs
	)

	command := &cobra.Command{
		Use:   "study",
		Short: "Study the vocabulary interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewConfigLoader(configFile)
			if err != nil {
				return fmt.Errorf("failed to create config loader: %w", err)
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			overrides.apply(cmd.Flags(), &cfg.Study)
			if err := loader.Validate(cfg); err != nil {
				return err
			}

			options, err := quiz.OptionsFromConfig(cfg.Study)
			if err != nil {
				return fmt.Errorf("quiz.OptionsFromConfig() > %w", err)
			}
			store, err := loadStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			engine := quiz.NewEngine(store, options, quiz.NewRandom(cfg.Study.Seed))
			stdout := cmd.OutOrStdout()
			studyCLI := cli.NewStudyCLI(engine, cfg.Study.ShowRomaji, cmd.InOrStdin(), stdout)
			if err := studyCLI.Run(cmd.Context(), studyCLI); err != nil {
				return err
			}
			studyCLI.PrintSummary()

			return writeStudyOutputs(stdout, cfg.Report, engine, outputs, time.Now())
		},
	}

	flags := command.Flags()
	overrides.register(flags)
	flags.BoolVar(&outputs.report, "report", false, "Write a markdown report of the session to the report output directory")
	flags.BoolVar(&outputs.pdf, "pdf", false, "Also write the report as PDF next to the markdown file (requires --report)")
	flags.StringVar(&outputs.progressPath, "progress", "", "Write the memorization progress to this file (.csv or .yaml)")
	flags.StringVar(&outputs.historyPath, "history", "", "Write the answer history to this file (.csv or .yaml)")
	return command
}

func writeStudyOutputs(stdout io.Writer, cfg config.ReportConfig, engine *quiz.Engine, outputs studyOutputs, now time.Time) error {
	if outputs.progressPath != "" {
		rows := engine.ProgressRows()
		format := export.FormatFromPath(outputs.progressPath)
		if err := export.WriteFile(outputs.progressPath, func(w io.Writer) error {
			return export.WriteProgress(w, format, rows)
		}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Progress written to %s\n", outputs.progressPath)
	}

	if outputs.historyPath != "" {
		attempts := engine.History()
		format := export.FormatFromPath(outputs.historyPath)
		if err := export.WriteFile(outputs.historyPath, func(w io.Writer) error {
			return export.WriteHistory(w, format, attempts)
		}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "History written to %s\n", outputs.historyPath)
	}

	if !outputs.report {
		return nil
	}
	reportPath := filepath.Join(cfg.OutputDirectory, fmt.Sprintf("session-%s.md", now.Format("20060102-150405")))
	data := report.NewSessionReport(engine, now)
	if err := export.WriteFile(reportPath, func(w io.Writer) error {
		return report.WriteSessionReport(w, cfg.Template, data)
	}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Report written to %s\n", reportPath)

	if !outputs.pdf {
		return nil
	}
	pdfPath, err := report.WriteSessionPDF(strings.TrimSuffix(reportPath, ".md")+".pdf", cfg.Template, data)
	if err != nil {
		return fmt.Errorf("report.WriteSessionPDF() > %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "PDF written to %s\n", pdfPath)
	return nil
}

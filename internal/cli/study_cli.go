package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/at-ishikawa/kotoba/internal/quiz"
)

// StudyCLI presents the cards of an engine in the terminal.
type StudyCLI struct {
	*InteractiveQuizCLI
	engine     *quiz.Engine
	showRomaji bool
}

func NewStudyCLI(engine *quiz.Engine, showRomaji bool, stdin io.Reader, stdout io.Writer) *StudyCLI {
	return &StudyCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		engine:             engine,
		showRomaji:         showRomaji,
	}
}

const flashcardHelp = "[s]how [m]emorized [u]nmemorized [n]ext [p]rev [r]eshuffle [z]reset [q]uit: "

func (r *StudyCLI) Session(ctx context.Context) error {
	card, err := r.engine.Current()
	switch {
	case errors.Is(err, quiz.ErrNoResults):
		_, _ = fmt.Fprintln(r.stdoutWriter, "No entries match the current filters. Change the categories or the search query.")
		return errEnd
	case errors.Is(err, quiz.ErrExhausted):
		_, _ = fmt.Fprintln(r.stdoutWriter, "No more cards to practice!")
		return errEnd
	case err != nil:
		return fmt.Errorf("engine.Current() > %w", err)
	}

	r.printCard(card)
	switch r.engine.Options().Mode {
	case quiz.ModeMCQ:
		return r.choiceSession(card)
	case quiz.ModeTyped:
		return r.typedSession(card)
	}
	return r.flashcardSession(card)
}

func (r *StudyCLI) printCard(card quiz.Card) {
	_, _ = fmt.Fprintf(r.stdoutWriter, "\n[%d/%d] ", card.Position+1, card.Total)
	_, _ = r.bold.Fprint(r.stdoutWriter, card.Question)
	if r.showRomaji && r.engine.Options().Direction == quiz.DirectionPhoneticToTarget && card.Entry.Romaji != card.Question {
		_, _ = r.italic.Fprintf(r.stdoutWriter, " (%s)", card.Entry.Romaji)
	}
	if card.Status == quiz.StatusMemorized {
		_, _ = fmt.Fprint(r.stdoutWriter, " ★")
	}
	_, _ = fmt.Fprintln(r.stdoutWriter)
}

func (r *StudyCLI) printAnswer(card quiz.Card) {
	_, _ = fmt.Fprint(r.stdoutWriter, "Answer: ")
	_, _ = r.bold.Fprintln(r.stdoutWriter, card.Answer)

	entry := card.Entry
	var details []string
	for _, field := range []string{entry.Kanji, entry.Phonetic(), entry.Romaji, entry.Eng, entry.Tipe} {
		if field != "" {
			details = append(details, field)
		}
	}
	if len(details) > 0 {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  %s\n", strings.Join(details, " | "))
	}
	if entry.Catatan != "" {
		_, _ = r.italic.Fprintf(r.stdoutWriter, "  %s\n", entry.Catatan)
	}
}

func (r *StudyCLI) printStats() {
	stats := r.engine.Stats()
	_, _ = fmt.Fprintf(r.stdoutWriter, "Score %d | attempts %d | accuracy %.0f%% | memorized %d | progress %.0f%% | level %d\n",
		stats.Score,
		stats.Attempts,
		stats.Accuracy,
		stats.Memorized,
		stats.Progress,
		stats.Level,
	)
}

func (r *StudyCLI) flashcardSession(card quiz.Card) error {
	_, _ = fmt.Fprint(r.stdoutWriter, flashcardHelp)
	command, err := r.readLine()
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "s":
		r.printAnswer(card)
		return nil
	case "m":
		return r.mark(card, quiz.StatusMemorized)
	case "u":
		return r.mark(card, quiz.StatusNotMemorized)
	case "n":
		return r.engine.Next()
	case "p":
		return r.engine.Prev()
	case "r":
		r.engine.Reshuffle()
		_, _ = fmt.Fprintln(r.stdoutWriter, "Cards reshuffled")
		return nil
	case "z":
		r.engine.ResetScore()
		_, _ = fmt.Fprintln(r.stdoutWriter, "Score reset")
		return nil
	case "q":
		return errEnd
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Unknown command %q\n", command)
	return nil
}

func (r *StudyCLI) mark(card quiz.Card, status quiz.Status) error {
	if err := r.engine.Mark(card.ID, status); err != nil {
		return fmt.Errorf("engine.Mark(%d) > %w", card.ID, err)
	}
	if status == quiz.StatusMemorized {
		_, _ = r.correct.Fprintf(r.stdoutWriter, "Marked %s as memorized\n", card.Question)
	} else {
		_, _ = r.wrong.Fprintf(r.stdoutWriter, "Marked %s as not memorized\n", card.Question)
	}
	if r.engine.Options().AdvanceOnMark == quiz.AdvanceWraparound {
		r.printStats()
	}
	return nil
}

func (r *StudyCLI) choiceSession(card quiz.Card) error {
	for i, option := range card.Options {
		_, _ = fmt.Fprintf(r.stdoutWriter, "  %d. %s\n", i+1, option)
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Choose 1-%d or [q]uit: ", len(card.Options))
	input, err := r.readLine()
	if err != nil {
		return err
	}
	input = strings.TrimSpace(input)
	if input == "q" {
		return errEnd
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(card.Options) {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Choose a number between 1 and %d\n", len(card.Options))
		return nil
	}

	result, err := r.engine.SubmitChoice(card.Options[choice-1])
	if err != nil {
		return fmt.Errorf("engine.SubmitChoice() > %w", err)
	}
	r.printResult(card, result.Attempt)
	return nil
}

func (r *StudyCLI) typedSession(card quiz.Card) error {
	_, _ = fmt.Fprint(r.stdoutWriter, "Answer (:q to quit): ")
	input, err := r.readLine()
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == ":q" {
		return errEnd
	}

	result, err := r.engine.SubmitTyped(input)
	if err != nil {
		return fmt.Errorf("engine.SubmitTyped() > %w", err)
	}
	r.printResult(card, result.Attempt)
	return nil
}

func (r *StudyCLI) printResult(card quiz.Card, attempt quiz.Attempt) {
	if attempt.Correct {
		_, _ = fmt.Fprint(r.stdoutWriter, "\u2705 ")
		_, _ = r.correct.Fprintf(r.stdoutWriter, "Correct (similarity %.0f%%)\n", attempt.Similarity)
	} else {
		_, _ = fmt.Fprint(r.stdoutWriter, "\u274C ")
		_, _ = r.wrong.Fprintf(r.stdoutWriter, "Wrong (similarity %.0f%%)\n", attempt.Similarity)
	}
	r.printAnswer(card)
	r.printStats()
}

// PrintSummary writes the final statistics of the session.
func (r *StudyCLI) PrintSummary() {
	_, _ = fmt.Fprintln(r.stdoutWriter)
	_, _ = r.bold.Fprintln(r.stdoutWriter, "Session summary")
	r.printStats()
	if stats := r.engine.Stats(); stats.AverageSimilarity > 0 {
		_, _ = fmt.Fprintf(r.stdoutWriter, "Average similarity %.0f%%\n", stats.AverageSimilarity)
	}
}

package quiz

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// State is the phase of an engine.
type State string

const (
	StatePresenting State = "presenting"
	StateExhausted  State = "exhausted"
	StateNoResults  State = "no-results"
)

var (
	// ErrNoResults means no entry survived the filters. It is a state, not a failure.
	ErrNoResults    = errors.New("no entries match the current filters")
	ErrExhausted    = errors.New("no more entries in this session")
	ErrUnknownEntry = errors.New("unknown entry")
	ErrPosition     = errors.New("position out of range")
)

// Card is the entry presented at the current position.
type Card struct {
	ID       int              `json:"id"`
	Entry    vocabulary.Entry `json:"entry"`
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	// Options is only set in multiple-choice mode.
	Options  []string `json:"options,omitempty"`
	Status   Status   `json:"status"`
	Position int      `json:"position"`
	Total    int      `json:"total"`
}

// Result is the outcome of a submitted answer.
type Result struct {
	Attempt Attempt `json:"attempt"`
	State   State   `json:"state"`
}

// Engine drives one study session over a shared store. It is not safe for concurrent use.
type Engine struct {
	store   *vocabulary.Store
	rng     Random
	options Options
	session *Session
	state   State
}

func NewEngine(store *vocabulary.Store, options Options, rng Random) *Engine {
	engine := &Engine{
		store:   store,
		rng:     rng,
		options: options,
		session: NewSession(),
	}
	engine.rebuild(options.Shuffle)
	return engine
}

// Configure applies new options. The working set is rebuilt and the position reset only when they differ
// from the current ones; it reports whether a rebuild happened.
func (e *Engine) Configure(options Options) bool {
	if e.options.equal(options) {
		return false
	}
	if e.options.Direction != options.Direction || e.options.OptionCount != options.OptionCount {
		e.session.clearOptions()
	}
	e.options = options
	e.rebuild(options.Shuffle)
	return true
}

func (e *Engine) Options() Options {
	options := e.options
	options.Categories = slices.Clone(options.Categories)
	return options
}

func (e *Engine) Session() *Session {
	return e.session
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) rebuild(shuffle bool) {
	criteria := e.options.criteria()
	criteria.Shuffle = shuffle
	e.session.WorkingSet = BuildWorkingSet(e.store.Entries(), criteria, e.session.Status, e.rng)
	e.session.Position = 0
	e.state = StatePresenting
	if len(e.session.WorkingSet) == 0 {
		e.state = StateNoResults
	}
	slog.Debug("working set rebuilt",
		"size", len(e.session.WorkingSet),
		"shuffle", shuffle,
		"categories", criteria.Categories,
		"query", criteria.Query,
	)
}

// Reshuffle rebuilds the working set in a new random order. Marks, score and history are kept.
func (e *Engine) Reshuffle() {
	e.rebuild(true)
}

// ResetScore zeroes the counters and clears the history and the cached choices.
func (e *Engine) ResetScore() {
	e.session.ResetScore()
}

func (e *Engine) currentEntry() (vocabulary.Entry, error) {
	switch e.state {
	case StateNoResults:
		return vocabulary.Entry{}, ErrNoResults
	case StateExhausted:
		return vocabulary.Entry{}, ErrExhausted
	}
	id := e.session.WorkingSet[e.session.Position]
	entry, ok := e.store.Get(id)
	if !ok {
		return vocabulary.Entry{}, fmt.Errorf("entry %d: %w", id, ErrUnknownEntry)
	}
	return entry, nil
}

// Current returns the card at the current position.
func (e *Engine) Current() (Card, error) {
	entry, err := e.currentEntry()
	if err != nil {
		return Card{}, err
	}
	question, answer := e.options.Direction.Prompt(entry)
	card := Card{
		ID:       entry.ID,
		Entry:    entry,
		Question: question,
		Answer:   answer,
		Status:   e.session.Status(entry.ID),
		Position: e.session.Position,
		Total:    len(e.session.WorkingSet),
	}
	if e.options.Mode == ModeMCQ {
		card.Options = slices.Clone(e.choices(entry, answer))
	}
	return card, nil
}

// choices returns the cached options of an entry, generating them on first use.
func (e *Engine) choices(entry vocabulary.Entry, answer string) []string {
	if options, ok := e.session.cachedOptions(entry.ID); ok {
		return options
	}
	options := GenerateOptions(answer, e.store.Entries(), entry.ID, e.options.OptionCount, e.options.Direction.Answer, e.rng)
	e.session.cacheOptions(entry.ID, options)
	return options
}

// Next moves to the following card, staying on the last one.
func (e *Engine) Next() error {
	if len(e.session.WorkingSet) == 0 {
		return ErrNoResults
	}
	return e.Seek(min(e.session.Position+1, len(e.session.WorkingSet)-1))
}

// Prev moves to the previous card, staying on the first one.
func (e *Engine) Prev() error {
	if len(e.session.WorkingSet) == 0 {
		return ErrNoResults
	}
	return e.Seek(max(e.session.Position-1, 0))
}

// Seek jumps to a position of the working set. It also leaves the exhausted state.
func (e *Engine) Seek(position int) error {
	if len(e.session.WorkingSet) == 0 {
		return ErrNoResults
	}
	if position < 0 || position >= len(e.session.WorkingSet) {
		return fmt.Errorf("position %d of %d: %w", position, len(e.session.WorkingSet), ErrPosition)
	}
	e.session.Position = position
	e.state = StatePresenting
	return nil
}

// Mark sets the memorization status of an entry. With AdvanceWraparound the position moves to the next card,
// wrapping to the first, and a memorized mark adds the mark bonus to the score.
func (e *Engine) Mark(id int, status Status) error {
	if _, ok := e.store.Get(id); !ok {
		return fmt.Errorf("entry %d: %w", id, ErrUnknownEntry)
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return fmt.Errorf("ParseStatus() > %w", err)
	}
	e.session.SetStatus(id, status)

	if e.options.AdvanceOnMark != AdvanceWraparound {
		return nil
	}
	if status == StatusMemorized {
		e.session.Score += e.options.MarkBonus
	}
	if total := len(e.session.WorkingSet); total > 0 {
		e.session.Position = (e.session.Position + 1) % total
		e.state = StatePresenting
	}
	return nil
}

// SubmitTyped grades a free-text answer for the current card and advances.
func (e *Engine) SubmitTyped(answer string) (Result, error) {
	entry, err := e.currentEntry()
	if err != nil {
		return Result{}, err
	}
	question, expected := e.options.Direction.Prompt(entry)
	matcher := Matcher{
		Threshold: e.options.SimilarityThreshold,
		Flexible:  e.options.FlexibleCheck,
	}
	verdict := matcher.Evaluate(expected, answer, e.options.Direction.PhoneticAnswer())
	return e.record(Attempt{
		Entry:      entry,
		Question:   question,
		Answer:     answer,
		Expected:   expected,
		Similarity: verdict.Similarity,
		Correct:    verdict.Correct,
		Mode:       ModeTyped,
	}), nil
}

// SubmitChoice grades a multiple-choice answer by exact equality and advances.
func (e *Engine) SubmitChoice(option string) (Result, error) {
	entry, err := e.currentEntry()
	if err != nil {
		return Result{}, err
	}
	question, expected := e.options.Direction.Prompt(entry)
	correct := option == expected
	similarity := 0.0
	if correct {
		similarity = 100
	}
	return e.record(Attempt{
		Entry:      entry,
		Question:   question,
		Answer:     option,
		Expected:   expected,
		Similarity: similarity,
		Correct:    correct,
		Mode:       ModeMCQ,
	}), nil
}

func (e *Engine) record(attempt Attempt) Result {
	e.session.Record(attempt)
	if e.session.Position < len(e.session.WorkingSet)-1 {
		e.session.Position++
	} else {
		e.state = StateExhausted
	}
	slog.Debug("answer recorded",
		"entry", attempt.Entry.ID,
		"correct", attempt.Correct,
		"similarity", attempt.Similarity,
		"state", e.state,
	)
	return Result{
		Attempt: attempt,
		State:   e.state,
	}
}

func (e *Engine) Stats() Stats {
	return e.session.Stats()
}

// FilteredEntries returns the entries matching the category and query filters in dataset order,
// ignoring shuffling and memorization.
func (e *Engine) FilteredEntries() []vocabulary.Entry {
	return FilterEntries(e.store.Entries(), e.options.Categories, e.options.SearchQuery)
}

// ProgressRows returns the memorization marks in first-mark order.
func (e *Engine) ProgressRows() []ProgressRow {
	ids := e.session.MarkedIDs()
	rows := make([]ProgressRow, 0, len(ids))
	for _, id := range ids {
		entry, ok := e.store.Get(id)
		if !ok {
			continue
		}
		rows = append(rows, progressRow(entry, e.session.Status(id)))
	}
	return rows
}

// History returns the graded attempts, newest first.
func (e *Engine) History() []Attempt {
	return e.session.History()
}

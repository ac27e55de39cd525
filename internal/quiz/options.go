// Package quiz implements study sessions over a vocabulary store: working-set filtering,
// answer checking, multiple-choice distractors, and per-session progress.
package quiz

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/at-ishikawa/kotoba/internal/config"
)

// Mode is how cards are studied.
type Mode string

const (
	ModeFlashcard Mode = "flashcard"
	ModeMCQ       Mode = "mcq"
	ModeTyped     Mode = "typed"
)

// AdvanceOnMark controls whether marking a card moves to the next one.
type AdvanceOnMark string

const (
	AdvanceNone AdvanceOnMark = "none"
	// AdvanceWraparound moves to the next card after every mark, wrapping to the first card,
	// and grants the mark bonus for "memorized" marks.
	AdvanceWraparound AdvanceOnMark = "wraparound"
)

// AllCategories selects every entry regardless of its tags.
const AllCategories = "All"

const (
	DefaultOptionCount         = 4
	DefaultSimilarityThreshold = 80
	DefaultMarkBonus           = 10
	pointsPerLevel             = 50
)

type Options struct {
	Categories           []string      `json:"categories"`
	SearchQuery          string        `json:"search_query"`
	Shuffle              bool          `json:"shuffle"`
	Mode                 Mode          `json:"mode"`
	Direction            Direction     `json:"direction"`
	OptionCount          int           `json:"option_count"`
	SimilarityThreshold  int           `json:"similarity_threshold"`
	FlexibleCheck        bool          `json:"flexible_check"`
	FocusUnmemorizedOnly bool          `json:"focus_unmemorized_only"`
	AdvanceOnMark        AdvanceOnMark `json:"advance_on_mark"`
	MarkBonus            int           `json:"mark_bonus"`
}

func DefaultOptions() Options {
	return Options{
		Categories:          []string{AllCategories},
		Shuffle:             true,
		Mode:                ModeFlashcard,
		Direction:           DirectionPhoneticToTarget,
		OptionCount:         DefaultOptionCount,
		SimilarityThreshold: DefaultSimilarityThreshold,
		FlexibleCheck:       true,
		AdvanceOnMark:       AdvanceNone,
		MarkBonus:           DefaultMarkBonus,
	}
}

// OptionsFromConfig converts the validated study configuration.
func OptionsFromConfig(cfg config.StudyConfig) (Options, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return Options{}, err
	}
	direction, err := ParseDirection(cfg.Direction)
	if err != nil {
		return Options{}, err
	}
	advance, err := ParseAdvanceOnMark(cfg.AdvanceOnMark)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Categories:           slices.Clone(cfg.Categories),
		SearchQuery:          cfg.SearchQuery,
		Shuffle:              cfg.Shuffle,
		Mode:                 mode,
		Direction:            direction,
		OptionCount:          cfg.OptionCount,
		SimilarityThreshold:  cfg.SimilarityThreshold,
		FlexibleCheck:        cfg.FlexibleCheck,
		FocusUnmemorizedOnly: cfg.FocusUnmemorizedOnly,
		AdvanceOnMark:        advance,
		MarkBonus:            cfg.MarkBonus,
	}, nil
}

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModeFlashcard, ModeMCQ, ModeTyped:
		return mode, nil
	}
	return "", fmt.Errorf("invalid mode %q, valid values are %q, %q or %q", value, ModeFlashcard, ModeMCQ, ModeTyped)
}

func ParseAdvanceOnMark(value string) (AdvanceOnMark, error) {
	switch advance := AdvanceOnMark(value); advance {
	case AdvanceNone, AdvanceWraparound:
		return advance, nil
	case "":
		return AdvanceNone, nil
	}
	return "", fmt.Errorf("invalid advance on mark %q, valid values are %q or %q", value, AdvanceNone, AdvanceWraparound)
}

func (o Options) equal(other Options) bool {
	return slices.Equal(o.Categories, other.Categories) &&
		o.SearchQuery == other.SearchQuery &&
		o.Shuffle == other.Shuffle &&
		o.Mode == other.Mode &&
		o.Direction == other.Direction &&
		o.OptionCount == other.OptionCount &&
		o.SimilarityThreshold == other.SimilarityThreshold &&
		o.FlexibleCheck == other.FlexibleCheck &&
		o.FocusUnmemorizedOnly == other.FocusUnmemorizedOnly &&
		o.AdvanceOnMark == other.AdvanceOnMark &&
		o.MarkBonus == other.MarkBonus
}

func (o Options) criteria() Criteria {
	return Criteria{
		Categories:      o.Categories,
		Query:           o.SearchQuery,
		Shuffle:         o.Shuffle,
		UnmemorizedOnly: o.FocusUnmemorizedOnly,
	}
}

// Random is the source of randomness for shuffling and distractor sampling.
// *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns a seeded generator. A zero seed uses the current time.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

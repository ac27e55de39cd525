package quiz

import (
	"fmt"
	"slices"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// Status is the memorization mark of an entry.
type Status string

const (
	StatusMemorized    Status = "memorized"
	StatusNotMemorized Status = "not-memorized"
)

func ParseStatus(value string) (Status, error) {
	switch status := Status(value); status {
	case StatusMemorized, StatusNotMemorized:
		return status, nil
	}
	return "", fmt.Errorf("invalid status %q, valid values are %q or %q", value, StatusMemorized, StatusNotMemorized)
}

// Attempt is one graded answer.
type Attempt struct {
	Entry    vocabulary.Entry `json:"entry" yaml:"entry"`
	Question string           `json:"question" yaml:"question"`
	Answer   string           `json:"answer" yaml:"answer"`
	Expected string           `json:"expected" yaml:"expected"`
	// Similarity is a percentage. Multiple-choice answers are recorded as 0 or 100.
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Correct    bool    `json:"correct" yaml:"correct"`
	Mode       Mode    `json:"mode" yaml:"mode"`
}

// ProgressRow is one memorization mark in the order the entries were first marked.
type ProgressRow struct {
	EntryID     int    `json:"entry_id" yaml:"entry_id"`
	Term        string `json:"term" yaml:"term"`
	Translation string `json:"translation" yaml:"translation"`
	Status      Status `json:"status" yaml:"status"`
}

// Stats summarizes a session.
type Stats struct {
	Score    int `json:"score" yaml:"score"`
	Attempts int `json:"attempts" yaml:"attempts"`
	// Accuracy is the percentage of correct attempts, 0 without attempts.
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
	// AverageSimilarity is the mean similarity percentage of typed answers, 0 without any.
	AverageSimilarity float64 `json:"average_similarity" yaml:"average_similarity"`
	Memorized         int     `json:"memorized" yaml:"memorized"`
	NotMemorized      int     `json:"not_memorized" yaml:"not_memorized"`
	// Progress is the percentage of the working set marked memorized.
	Progress float64 `json:"progress" yaml:"progress"`
	Total    int     `json:"total" yaml:"total"`
	Position int     `json:"position" yaml:"position"`
	Level    int     `json:"level" yaml:"level"`
}

// Session is the mutable state of one learner. It is not safe for concurrent use.
type Session struct {
	WorkingSet      []int
	Position        int
	Score           int
	Attempts        int
	SimilaritySum   float64
	SimilarityCount int

	statuses  map[int]Status
	markOrder []int
	history   []Attempt
	options   map[int][]string
}

func NewSession() *Session {
	return &Session{
		statuses: make(map[int]Status),
		options:  make(map[int][]string),
	}
}

// Status returns the mark of an entry. Unmarked entries are not memorized.
func (s *Session) Status(id int) Status {
	if status, ok := s.statuses[id]; ok {
		return status
	}
	return StatusNotMemorized
}

// SetStatus overwrites the mark of an entry. The first mark of an entry fixes its place in the progress order.
func (s *Session) SetStatus(id int, status Status) {
	if _, ok := s.statuses[id]; !ok {
		s.markOrder = append(s.markOrder, id)
	}
	s.statuses[id] = status
}

// MarkedIDs returns the ids of marked entries in first-mark order.
func (s *Session) MarkedIDs() []int {
	return slices.Clone(s.markOrder)
}

// History returns the attempts, newest first.
func (s *Session) History() []Attempt {
	return slices.Clone(s.history)
}

// Record counts a graded attempt. Only typed answers contribute to the similarity average.
func (s *Session) Record(attempt Attempt) {
	s.Attempts++
	if attempt.Correct {
		s.Score++
	}
	if attempt.Mode == ModeTyped {
		s.SimilaritySum += attempt.Similarity / 100
		s.SimilarityCount++
	}
	s.history = slices.Insert(s.history, 0, attempt)
}

// ResetScore clears the score counters, the history and the cached choices. Marks are kept.
func (s *Session) ResetScore() {
	s.Score = 0
	s.Attempts = 0
	s.SimilaritySum = 0
	s.SimilarityCount = 0
	s.history = nil
	s.clearOptions()
}

func (s *Session) cachedOptions(id int) ([]string, bool) {
	options, ok := s.options[id]
	return options, ok
}

func (s *Session) cacheOptions(id int, options []string) {
	s.options[id] = options
}

// clearOptions drops the cached choices, which depend on the direction and the option count.
func (s *Session) clearOptions() {
	clear(s.options)
}

// Stats summarizes the session against its current working set.
func (s *Session) Stats() Stats {
	stats := Stats{
		Score:    s.Score,
		Attempts: s.Attempts,
		Total:    len(s.WorkingSet),
		Position: s.Position,
		Level:    1 + s.Score/pointsPerLevel,
	}
	if s.Attempts > 0 {
		stats.Accuracy = float64(s.Score) / float64(s.Attempts) * 100
	}
	if s.SimilarityCount > 0 {
		stats.AverageSimilarity = s.SimilaritySum / float64(s.SimilarityCount) * 100
	}
	for _, status := range s.statuses {
		switch status {
		case StatusMemorized:
			stats.Memorized++
		case StatusNotMemorized:
			stats.NotMemorized++
		}
	}
	if len(s.WorkingSet) > 0 {
		memorized := 0
		for _, id := range s.WorkingSet {
			if s.statuses[id] == StatusMemorized {
				memorized++
			}
		}
		stats.Progress = float64(memorized) / float64(len(s.WorkingSet)) * 100
	}
	return stats
}

func progressRow(entry vocabulary.Entry, status Status) ProgressRow {
	return ProgressRow{
		EntryID:     entry.ID,
		Term:        entry.DisplayTerm(),
		Translation: entry.Indo,
		Status:      status,
	}
}

package quiz

import (
	"fmt"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

// Direction decides which field of an entry is the question and which is the answer.
type Direction string

const (
	DirectionPhoneticToTarget Direction = "phonetic-to-target"
	DirectionRomanToTarget    Direction = "roman-to-target"
	DirectionTargetToPhonetic Direction = "target-to-phonetic"
)

func ParseDirection(value string) (Direction, error) {
	switch direction := Direction(value); direction {
	case DirectionPhoneticToTarget, DirectionRomanToTarget, DirectionTargetToPhonetic:
		return direction, nil
	}
	return "", fmt.Errorf("invalid direction %q, valid values are %q, %q or %q",
		value, DirectionPhoneticToTarget, DirectionRomanToTarget, DirectionTargetToPhonetic)
}

// Prompt returns the question and the expected answer for an entry.
// Readings fall back from hiragana to katakana; a phonetic question with neither falls back to romaji.
// Unknown directions behave like DirectionPhoneticToTarget.
func (d Direction) Prompt(entry vocabulary.Entry) (question, answer string) {
	switch d {
	case DirectionRomanToTarget:
		return entry.Romaji, entry.Indo
	case DirectionTargetToPhonetic:
		return entry.Indo, entry.Phonetic()
	}
	question = entry.Phonetic()
	if question == "" {
		question = entry.Romaji
	}
	return question, entry.Indo
}

// Answer returns only the expected answer; distractors are drawn from this field of other entries.
func (d Direction) Answer(entry vocabulary.Entry) string {
	_, answer := d.Prompt(entry)
	return answer
}

// PhoneticAnswer reports whether answers are written in kana, which selects kana normalization.
func (d Direction) PhoneticAnswer() bool {
	return d == DirectionTargetToPhonetic
}

package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func TestDirection_Prompt(t *testing.T) {
	neko := vocabulary.Entry{Kanji: "猫", Hiragana: "ねこ", Romaji: "neko", Indo: "kucing"}
	pan := vocabulary.Entry{Katakana: "パン", Romaji: "pan", Indo: "roti"}
	romajiOnly := vocabulary.Entry{Romaji: "desu", Indo: "adalah"}

	tests := []struct {
		name         string
		direction    Direction
		entry        vocabulary.Entry
		wantQuestion string
		wantAnswer   string
	}{
		{name: "hiragana question", direction: DirectionPhoneticToTarget, entry: neko, wantQuestion: "ねこ", wantAnswer: "kucing"},
		{name: "katakana question", direction: DirectionPhoneticToTarget, entry: pan, wantQuestion: "パン", wantAnswer: "roti"},
		{name: "romaji question without readings", direction: DirectionPhoneticToTarget, entry: romajiOnly, wantQuestion: "desu", wantAnswer: "adalah"},
		{name: "roman to target", direction: DirectionRomanToTarget, entry: neko, wantQuestion: "neko", wantAnswer: "kucing"},
		{name: "hiragana answer", direction: DirectionTargetToPhonetic, entry: neko, wantQuestion: "kucing", wantAnswer: "ねこ"},
		{name: "katakana answer", direction: DirectionTargetToPhonetic, entry: pan, wantQuestion: "roti", wantAnswer: "パン"},
		{name: "empty answer without readings", direction: DirectionTargetToPhonetic, entry: romajiOnly, wantQuestion: "adalah", wantAnswer: ""},
		{name: "unknown direction", direction: Direction("other"), entry: neko, wantQuestion: "ねこ", wantAnswer: "kucing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, answer := tt.direction.Prompt(tt.entry)
			assert.Equal(t, tt.wantQuestion, question)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Equal(t, tt.wantAnswer, tt.direction.Answer(tt.entry))
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, value := range []string{"phonetic-to-target", "roman-to-target", "target-to-phonetic"} {
		direction, err := ParseDirection(value)
		require.NoError(t, err)
		assert.Equal(t, Direction(value), direction)
	}

	_, err := ParseDirection("PhoneticToTarget")
	assert.Error(t, err)
	assert.True(t, DirectionTargetToPhonetic.PhoneticAnswer())
	assert.False(t, DirectionRomanToTarget.PhoneticAnswer())
}

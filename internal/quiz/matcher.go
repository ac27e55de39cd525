package quiz

import (
	"math"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
)

var (
	fullWidthPunctuation = strings.NewReplacer("。", ".", "、", ",", "！", "!", "？", "?")
	// Letters, digits, underscore, whitespace, kana, apostrophe and hyphen survive normalization.
	disallowedCharacters = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}\x{3040}-\x{30FF}'-]`)
	whitespaceRun        = regexp.MustCompile(`[\s\p{Z}]+`)
)

// NormalizeText canonicalizes a free-text answer: full-width punctuation is folded,
// other punctuation becomes a space, case is folded and whitespace is collapsed.
func NormalizeText(s string) string {
	s = fullWidthPunctuation.Replace(s)
	s = disallowedCharacters.ReplaceAllString(s, " ")
	s = cases.Fold().String(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeKana canonicalizes a kana answer. All whitespace is removed since kana words carry no spaces.
func NormalizeKana(s string) string {
	s = strings.ReplaceAll(s, "\u3000", "")
	s = disallowedCharacters.ReplaceAllString(s, " ")
	return whitespaceRun.ReplaceAllString(s, "")
}

// Similarity returns the matching-blocks ratio of two strings in [0, 1], compared rune by rune.
// The larger of both argument orders is used so the result is symmetric. Two empty strings are identical.
func Similarity(a, b string) float64 {
	left, right := runeTokens(a), runeTokens(b)
	forward := difflib.NewMatcher(left, right).Ratio()
	backward := difflib.NewMatcher(right, left).Ratio()
	return math.Max(forward, backward)
}

func runeTokens(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Matcher judges typed answers.
type Matcher struct {
	// Threshold is the minimum similarity percentage of a correct answer.
	Threshold int
	// Flexible normalizes both strings before comparing them. Otherwise only surrounding whitespace is trimmed.
	Flexible bool
}

// Verdict is the outcome of a typed answer.
type Verdict struct {
	// Expected and Answer are the compared forms after normalization.
	Expected string
	Answer   string
	// Similarity is a percentage in [0, 100].
	Similarity float64
	Correct    bool
}

// Evaluate compares an answer with the expected one. kana selects NormalizeKana instead of NormalizeText.
func (m Matcher) Evaluate(expected, answer string, kana bool) Verdict {
	normalize := strings.TrimSpace
	if m.Flexible {
		normalize = NormalizeText
		if kana {
			normalize = NormalizeKana
		}
	}
	expected = normalize(expected)
	answer = normalize(answer)

	similarity := Similarity(expected, answer) * 100
	return Verdict{
		Expected:   expected,
		Answer:     answer,
		Similarity: similarity,
		Correct:    similarity >= float64(m.Threshold),
	}
}

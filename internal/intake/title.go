package intake

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"task-planner/internal/model"
)

var fillerWords = map[string]bool{
	"at":  true,
	"on":  true,
	"for": true,
	"the": true,
	"a":   true,
	"an":  true,
	"in":  true,
}

// TitlePass turns the leftover text into the title: every filler word
// ("at", "on", "for", "the", "a", "an", "in") is removed wherever it stands,
// then whitespace is collapsed and the first letter capitalized.
func TitlePass() Pass {
	return func(text string, draft model.ParsedDraft) (string, model.ParsedDraft) {
		draft.Title = capitalize(cleanTitle(text))
		return "", draft
	}
}

func cleanTitle(text string) string {
	tokens := strings.Fields(strings.ReplaceAll(text, gap, " "))

	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isFiller(tok) || isPunctuation(tok) {
			continue
		}
		words = append(words, tok)
	}
	return strings.Trim(strings.Join(words, " "), " ,;:-")
}

func isFiller(tok string) bool {
	return fillerWords[strings.ToLower(strings.Trim(tok, ",;:"))]
}

func isPunctuation(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinWordLength is the shortest word that can ever score
const MinWordLength = 3

// Rejection reasons, checked in this order
const (
	ReasonTooShort         = "Word must be at least 3 letters"
	ReasonCannotForm       = "Word cannot be formed from the given letters"
	ReasonNotInDictionary  = "Not a valid word"
	ReasonAlreadySubmitted = "Word already submitted"
)

// Validator is the dictionary membership test used by the acceptance checks
type Validator interface {
	IsValidWord(word string) bool
}

// NormalizeWord trims the word and upper-cases it
func NormalizeWord(word string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(word))
}

// CanForm reports whether word can be spelled with letters, using each
// letter at most as many times as it appears in letters.
func CanForm(word, letters string) bool {
	available := make(map[rune]int, len(letters))
	for _, r := range letters {
		available[r]++
	}

	for _, r := range word {
		if available[r] == 0 {
			return false
		}
		available[r]--
	}
	return true
}

// Score returns the point value of a word based on its length
func Score(word string) int {
	n := utf8.RuneCountInString(word)
	switch {
	case n < MinWordLength:
		return 0
	case n == 3:
		return 100
	case n == 4:
		return 400
	case n == 5:
		return 800
	case n == 6:
		return 1400
	case n == 7:
		return 1800
	default:
		return 2300 + (n-8)*500
	}
}

// CheckWord runs the acceptance checks against an already normalized word.
// It returns the points on acceptance, or the reason of the first failing check.
func CheckWord(word, letters string, dict Validator, existing []WordEntry) (int, string) {
	if utf8.RuneCountInString(word) < MinWordLength {
		return 0, ReasonTooShort
	}
	if !CanForm(word, letters) {
		return 0, ReasonCannotForm
	}
	if dict == nil || !dict.IsValidWord(word) {
		return 0, ReasonNotInDictionary
	}
	for _, e := range existing {
		if e.Word == word {
			return 0, ReasonAlreadySubmitted
		}
	}
	return Score(word), ""
}

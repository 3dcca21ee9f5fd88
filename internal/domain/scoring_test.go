package domain

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

type wordSet map[string]bool

func (w wordSet) IsValidWord(word string) bool {
	return w[word]
}

func TestCanForm(t *testing.T) {
	is := is.New(t)
	type tc struct {
		word    string
		letters string
		ok      bool
	}
	cases := []tc{
		{"TEAM", "MASTER", true},
		{"TEAMS", "MASTER", true},
		{"MASTER", "MASTER", true},
		{"MASTERS", "MASTER", false},
		{"TREES", "MASTER", false},
		{"TEETER", "TEETRS", false},
		{"TEE", "TEETRS", true},
		{"SETTER", "SETTER", true},
		{"", "MASTER", true},
		{"CAT", "", false},
	}
	for _, c := range cases {
		is.Equal(CanForm(c.word, c.letters), c.ok) // c.word against c.letters
	}
}

func TestCanFormMatchesLetterCounts(t *testing.T) {
	letters := "AABCDE"
	words := []string{"AA", "AAA", "BAD", "BADE", "DAB", "CAB", "CABBED", "ABACDE", "EE"}
	for _, w := range words {
		want := true
		counts := map[rune]int{}
		for _, r := range letters {
			counts[r]++
		}
		for _, r := range w {
			counts[r]--
			if counts[r] < 0 {
				want = false
			}
		}
		assert.Equal(t, want, CanForm(w, letters), w)
	}
}

func TestScore(t *testing.T) {
	cases := map[string]int{
		"CAT":        100,
		"MAST":       400,
		"TABLE":      800,
		"MASTER":     1400,
		"MASTERS":    1800,
		"STREAMER":   2300,
		"STREAMERS":  2800,
		"ABCDEFGHIJ": 3300,
		"AT":         0,
	}
	for word, points := range cases {
		assert.Equal(t, points, Score(word), word)
	}
}

func TestNormalizeWord(t *testing.T) {
	is := is.New(t)
	is.Equal(NormalizeWord("  mast \n"), "MAST")
	is.Equal(NormalizeWord("Team"), "TEAM")
	is.Equal(NormalizeWord(""), "")
}

func TestCheckWordOrder(t *testing.T) {
	is := is.New(t)
	dict := wordSet{"MAST": true, "TEAM": true, "MASTER": true}
	existing := []WordEntry{{Word: "TEAM", Points: 400}}

	_, reason := CheckWord("MA", "MASTER", dict, existing)
	is.Equal(reason, ReasonTooShort)

	// Fails formation before dictionary lookup.
	_, reason = CheckWord("XYZZY", "MASTER", dict, existing)
	is.Equal(reason, ReasonCannotForm)

	_, reason = CheckWord("RAM", "MASTER", dict, existing)
	is.Equal(reason, ReasonNotInDictionary)

	_, reason = CheckWord("TEAM", "MASTER", dict, existing)
	is.Equal(reason, ReasonAlreadySubmitted)

	points, reason := CheckWord("MAST", "MASTER", dict, existing)
	is.Equal(reason, "")
	is.Equal(points, 400)
}

func TestCheckWordWithoutDictionary(t *testing.T) {
	is := is.New(t)
	_, reason := CheckWord("MAST", "MASTER", nil, nil)
	is.Equal(reason, ReasonNotInDictionary)

	_, reason = CheckWord("MAST", "MASTER", wordSet{}, nil)
	is.Equal(reason, ReasonNotInDictionary)
}

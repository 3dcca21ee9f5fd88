// Package dictionary holds the process-wide word list and the letter pool
// generator that seeds each round.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MinWordLength is the shortest word kept from a word list
	MinWordLength = 3

	// SeedLength is the length of the words letter pools are drawn from
	SeedLength = 6
)

// Dictionary is an immutable set of upper-case words. It is safe for
// concurrent use once built.
type Dictionary struct {
	words map[string]struct{}
	seeds []string
}

// New builds a dictionary from the given words. Words are trimmed and
// upper-cased; words shorter than MinWordLength or containing anything other
// than letters are dropped.
func New(words []string) *Dictionary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = normalize(w)
		if utf8.RuneCountInString(w) < MinWordLength {
			continue
		}
		if !lo.EveryBy([]rune(w), unicode.IsLetter) {
			continue
		}
		set[w] = struct{}{}
	}

	all := lo.Keys(set)
	sort.Strings(all)
	seeds := lo.Filter(all, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) == SeedLength
	})

	return &Dictionary{
		words: set,
		seeds: seeds,
	}
}

// Empty returns a dictionary with no words. Every lookup fails, so every
// submitted word is rejected.
func Empty() *Dictionary {
	return New(nil)
}

// Read builds a dictionary from one word per line. Blank lines and lines
// starting with # are skipped.
func Read(r io.Reader) (*Dictionary, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return New(words), nil
}

// Load reads the word list at path
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// IsValidWord reports whether word is in the dictionary, ignoring case
func (d *Dictionary) IsValidWord(word string) bool {
	word = normalize(word)
	if utf8.RuneCountInString(word) < MinWordLength {
		return false
	}
	_, ok := d.words[word]
	return ok
}

// Size returns the number of words
func (d *Dictionary) Size() int {
	return len(d.words)
}

// SeedCount returns the number of six-letter seed words
func (d *Dictionary) SeedCount() int {
	return len(d.seeds)
}

// Loaded reports whether any words are available
func (d *Dictionary) Loaded() bool {
	return len(d.words) > 0
}

func normalize(word string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(word))
}

package dictionary

import (
	"lukechampine.com/frand"
)

// DefaultSeedWord is used when the dictionary has no six-letter words
const DefaultSeedWord = "MASTER"

// Generator draws letter pools for new rounds
type Generator struct {
	dict *Dictionary
	intn func(n int) int
}

// NewGenerator creates a generator backed by dict, using frand for draws
func NewGenerator(dict *Dictionary) *Generator {
	return &Generator{
		dict: dict,
		intn: frand.Intn,
	}
}

// WithRand returns a copy of the generator that draws from intn.
// intn(n) must return a value in [0, n).
func (g *Generator) WithRand(intn func(n int) int) *Generator {
	return &Generator{
		dict: g.dict,
		intn: intn,
	}
}

// SeedWord picks a six-letter word uniformly from the dictionary
func (g *Generator) SeedWord() string {
	if g.dict == nil || len(g.dict.seeds) == 0 {
		return DefaultSeedWord
	}
	return g.dict.seeds[g.intn(len(g.dict.seeds))]
}

// GenerateLetters returns a uniformly random permutation of a seed word
func (g *Generator) GenerateLetters() string {
	letters := []rune(g.SeedWord())
	Shuffle(letters, g.intn)
	return string(letters)
}

// Shuffle permutes letters in place with Fisher-Yates
func Shuffle(letters []rune, intn func(n int) int) {
	for i := len(letters) - 1; i > 0; i-- {
		j := intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
}

package dictionary

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const wordList = `# test list
mast
Team
  master
STREAM
at
a
don't
tamers

`

func TestRead(t *testing.T) {
	is := is.New(t)
	d, err := Read(strings.NewReader(wordList))
	is.NoErr(err)

	is.Equal(d.Size(), 5)      // MAST TEAM MASTER STREAM TAMERS
	is.Equal(d.SeedCount(), 3) // MASTER STREAM TAMERS
	is.True(d.Loaded())
}

func TestIsValidWord(t *testing.T) {
	is := is.New(t)
	d, err := Read(strings.NewReader(wordList))
	is.NoErr(err)

	is.True(d.IsValidWord("MAST"))
	is.True(d.IsValidWord("mast"))
	is.True(d.IsValidWord(" Team "))
	is.True(!d.IsValidWord("AT")) // dropped as too short
	is.True(!d.IsValidWord("DON'T"))
	is.True(!d.IsValidWord("MASTS"))
	is.True(!d.IsValidWord(""))
}

func TestShortWordsNeverValid(t *testing.T) {
	is := is.New(t)
	d := &Dictionary{words: map[string]struct{}{"AT": {}}}
	is.True(!d.IsValidWord("AT"))
}

func TestEmpty(t *testing.T) {
	is := is.New(t)
	d := Empty()
	is.Equal(d.Size(), 0)
	is.True(!d.Loaded())
	is.True(!d.IsValidWord("MAST"))
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(path, []byte(wordList), 0o644))

	d, err := Load(path)
	is.NoErr(err)
	is.Equal(d.Size(), 5)
}

func TestLoadMissing(t *testing.T) {
	is := is.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	is.True(err != nil)
}

func sortedLetters(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}

func TestGenerateLetters(t *testing.T) {
	is := is.New(t)
	d := New([]string{"MASTER", "STREAM", "PLANET"})
	g := NewGenerator(d)

	seeds := map[string]bool{}
	for _, w := range []string{"MASTER", "STREAM", "PLANET"} {
		seeds[sortedLetters(w)] = true
	}
	for i := 0; i < 50; i++ {
		letters := g.GenerateLetters()
		is.Equal(len(letters), SeedLength)
		is.True(seeds[sortedLetters(letters)]) // letters are a permutation of a seed word
	}
}

func TestGenerateLettersFallback(t *testing.T) {
	is := is.New(t)
	g := NewGenerator(New([]string{"MAST", "TEAM"}))
	is.Equal(g.SeedWord(), DefaultSeedWord)
	is.Equal(sortedLetters(g.GenerateLetters()), sortedLetters(DefaultSeedWord))

	g = NewGenerator(nil)
	is.Equal(g.SeedWord(), DefaultSeedWord)
}

func TestSeedWordUsesDraw(t *testing.T) {
	is := is.New(t)
	d := New([]string{"STREAM", "MASTER", "PLANET"})
	g := NewGenerator(d).WithRand(func(n int) int { return n - 1 })

	// Seeds are kept sorted, so the last draw is STREAM.
	is.Equal(g.SeedWord(), "STREAM")
}

func TestShuffleIdentityDraw(t *testing.T) {
	is := is.New(t)
	letters := []rune("MASTER")
	// j == i at every step leaves the order unchanged.
	Shuffle(letters, func(n int) int { return n - 1 })
	is.Equal(string(letters), "MASTER")

	letters = []rune("ABC")
	// Always swapping with the first element rotates the slice.
	Shuffle(letters, func(n int) int { return 0 })
	is.Equal(string(letters), "BCA")
}

func TestShuffleIsUniform(t *testing.T) {
	is := is.New(t)
	g := NewGenerator(New([]string{"ABCDEF"}))
	counts := map[string]int{}
	const trials = 24000
	for i := 0; i < trials; i++ {
		letters := []rune("ABC")
		Shuffle(letters, g.intn)
		counts[string(letters)]++
	}
	is.Equal(len(counts), 6)
	for _, c := range counts {
		// Expected 4000 each; allow a wide margin.
		is.True(c > 3400 && c < 4600) // permutation skewed
	}
}

package domain

import (
	"github.com/samber/lo"
)

// WordEntry is an accepted word and the points it was worth when accepted
type WordEntry struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// Player represents a player in a round.
// Score always equals the sum of Points over Words.
type Player struct {
	Name  string      `json:"name"`
	Words []WordEntry `json:"words"`
	Score int         `json:"score"`
}

// NewPlayer creates a new player with the given display name
func NewPlayer(name string) *Player {
	return &Player{
		Name:  name,
		Words: make([]WordEntry, 0),
		Score: 0,
	}
}

// HasWord reports whether the player already holds the normalized word
func (p *Player) HasWord(word string) bool {
	return lo.ContainsBy(p.Words, func(e WordEntry) bool {
		return e.Word == word
	})
}

// AddWord appends an accepted word and adds its points to the score
func (p *Player) AddWord(word string, points int) {
	p.Words = append(p.Words, WordEntry{Word: word, Points: points})
	p.Score += points
}

// RemoveWord removes the word and subtracts the points recorded for it.
// It returns false if the player does not hold the word.
func (p *Player) RemoveWord(word string) bool {
	_, idx, ok := lo.FindIndexOf(p.Words, func(e WordEntry) bool {
		return e.Word == word
	})
	if !ok {
		return false
	}

	p.Score -= p.Words[idx].Points
	p.Words = append(p.Words[:idx], p.Words[idx+1:]...)
	return true
}

// TotalPoints recomputes the score from the word list
func (p *Player) TotalPoints() int {
	return lo.SumBy(p.Words, func(e WordEntry) int {
		return e.Points
	})
}

func (p *Player) clone() *Player {
	words := make([]WordEntry, len(p.Words))
	copy(words, p.Words)
	return &Player{
		Name:  p.Name,
		Words: words,
		Score: p.Score,
	}
}

// Standing is one row of a round's ranking
type Standing struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	WordCount int    `json:"wordCount"`
}

package domain

import (
	"sort"
	"strings"
	"time"
)

// Code alphabet and length. 0, O, 1 and I are left out so codes can be
// read aloud and typed without confusion.
const (
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 6
)

// ValidCode reports whether code has the shape of a round code
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}
	return true
}

// Round represents one game session
type Round struct {
	Code      string             `json:"code"`
	Letters   string             `json:"letters"`
	Status    Status             `json:"status"`
	StartTime *time.Time         `json:"startTime,omitempty"`
	Duration  int                `json:"duration"` // seconds
	CreatedAt time.Time          `json:"createdAt"`
	Players   map[string]*Player `json:"players"`
}

// NewRound creates a waiting round with the given code and letters
func NewRound(code, letters string, duration time.Duration, now time.Time) *Round {
	return &Round{
		Code:      code,
		Letters:   letters,
		Status:    StatusWaiting,
		Duration:  int(duration / time.Second),
		CreatedAt: now,
		Players:   make(map[string]*Player),
	}
}

// Length returns the round duration
func (r *Round) Length() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

// AddPlayer adds a player to a waiting round
func (r *Round) AddPlayer(playerID, name string) (*Player, error) {
	if r.Status != StatusWaiting {
		return nil, ErrNotWaiting
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	player := NewPlayer(name)
	r.Players[playerID] = player
	return player, nil
}

// GetPlayer returns a player by ID
func (r *Round) GetPlayer(playerID string) (*Player, error) {
	player, ok := r.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// Start moves a waiting round to active and stamps its start time
func (r *Round) Start(now time.Time) error {
	if !r.Status.CanTransitionTo(StatusActive) {
		return ErrNotWaiting
	}

	r.Status = StatusActive
	r.StartTime = &now
	return nil
}

// Expired reports whether an active round has run out of time
func (r *Round) Expired(now time.Time) bool {
	if r.Status != StatusActive || r.StartTime == nil {
		return false
	}
	return now.Sub(*r.StartTime) >= r.Length()
}

// Finalize marks an expired round finished. It returns true only when it
// changed the status, so repeated calls are harmless.
func (r *Round) Finalize(now time.Time) bool {
	if !r.Expired(now) {
		return false
	}
	r.Status = StatusFinished
	return true
}

// Remaining returns the time left on an active round
func (r *Round) Remaining(now time.Time) time.Duration {
	switch r.Status {
	case StatusWaiting:
		return r.Length()
	case StatusActive:
		left := r.Length() - now.Sub(*r.StartTime)
		if left < 0 {
			return 0
		}
		return left
	default:
		return 0
	}
}

// SubmitWord runs the acceptance checks for a player's word and records it if accepted
func (r *Round) SubmitWord(playerID, word string, dict Validator) (Submission, error) {
	if r.Status != StatusActive {
		return Submission{}, ErrNotActive
	}

	player, err := r.GetPlayer(playerID)
	if err != nil {
		return Submission{}, err
	}

	word = NormalizeWord(word)
	points, reason := CheckWord(word, r.Letters, dict, player.Words)
	if reason != "" {
		return Reject(word, reason), nil
	}

	player.AddWord(word, points)
	return Accept(word, points), nil
}

// RetractWord removes a word from a player's list. Retracting a word the
// player does not hold succeeds without changes; the bool reports whether
// anything was removed.
func (r *Round) RetractWord(playerID, word string) (bool, error) {
	if r.Status != StatusActive {
		return false, ErrNotActive
	}

	player, err := r.GetPlayer(playerID)
	if err != nil {
		return false, err
	}

	return player.RemoveWord(NormalizeWord(word)), nil
}

// Standings ranks players by score, highest first. Ties share a rank and
// are listed by name.
func (r *Round) Standings() []Standing {
	standings := make([]Standing, 0, len(r.Players))
	for id, p := range r.Players {
		standings = append(standings, Standing{
			PlayerID:  id,
			Name:      p.Name,
			Score:     p.Score,
			WordCount: len(p.Words),
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PlayerID < b.PlayerID
	})

	for i := range standings {
		if i > 0 && standings[i].Score == standings[i-1].Score {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}
	return standings
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	c := *r
	if r.StartTime != nil {
		t := *r.StartTime
		c.StartTime = &t
	}
	c.Players = make(map[string]*Player, len(r.Players))
	for id, p := range r.Players {
		c.Players[id] = p.clone()
	}
	return &c
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"wordrush/internal/domain"
	"wordrush/internal/store"
)

const (
	// DefaultDuration is how long a round runs once started
	DefaultDuration = 120 * time.Second

	// DefaultRetention is how long a round is kept after creation
	DefaultRetention = 24 * time.Hour

	// DefaultCodeAttempts bounds the search for an unused round code
	DefaultCodeAttempts = 10
)

// ErrNoCodeAvailable is returned when every generated code was already taken
var ErrNoCodeAvailable = errors.New("failed to generate unique room code")

// LetterSource produces the letter pool for a new round
type LetterSource interface {
	GenerateLetters() string
}

// Publisher receives round events
type Publisher interface {
	Publish(ctx context.Context, evt *domain.Event) error
}

// Options tunes a GameService. Zero values fall back to the defaults.
type Options struct {
	Duration     time.Duration
	Retention    time.Duration
	CodeAttempts int
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Retention <= 0 {
		o.Retention = DefaultRetention
	}
	if o.CodeAttempts <= 0 {
		o.CodeAttempts = DefaultCodeAttempts
	}
	return o
}

// Stats summarizes the stored rounds
type Stats struct {
	ActiveGames int `json:"activeGames"`
}

// GameService runs round operations against the store. Every mutation is a
// load-modify-save under the round code's lock, so concurrent requests for
// one round never lose each other's updates.
type GameService struct {
	store     store.Store
	dict      domain.Validator
	letters   LetterSource
	publisher Publisher
	logger    zerolog.Logger
	opts      Options
	locks     keyedMutex

	now         func() time.Time
	newCode     func() string
	newPlayerID func() string
}

// NewGameService creates a game service. A nil publisher drops events.
func NewGameService(st store.Store, dict domain.Validator, letters LetterSource, pub Publisher, logger zerolog.Logger, opts Options) *GameService {
	return &GameService{
		store:       st,
		dict:        dict,
		letters:     letters,
		publisher:   pub,
		logger:      logger,
		opts:        opts.withDefaults(),
		now:         time.Now,
		newCode:     generateCode,
		newPlayerID: uuid.NewString,
	}
}

// generateCode generates a random room code
func generateCode() string {
	code := make([]byte, domain.CodeLength)
	for i := range code {
		code[i] = domain.CodeAlphabet[frand.Intn(len(domain.CodeAlphabet))]
	}
	return string(code)
}

// normalizeCode upper-cases a code from a request. Malformed codes can never
// name a round, so they are reported as not found.
func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !domain.ValidCode(code) {
		return "", domain.ErrGameNotFound
	}
	return code, nil
}

// Create creates a new waiting round under a fresh code
func (s *GameService) Create(ctx context.Context) (*domain.Round, error) {
	for attempt := 0; attempt < s.opts.CodeAttempts; attempt++ {
		code := s.newCode()
		round, err := s.tryCreate(ctx, code)
		if errors.Is(err, errCodeTaken) {
			s.logger.Debug().Str("code", code).Msg("round-code-collision")
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info().Str("code", code).Str("letters", round.Letters).Msg("round-created")
		s.publish(ctx, domain.NewEvent(domain.EventRoundCreated, code, domain.RoundCreatedPayload{
			Letters:  round.Letters,
			Duration: round.Duration,
		}))
		return round, nil
	}
	return nil, ErrNoCodeAvailable
}

var errCodeTaken = errors.New("code taken")

func (s *GameService) tryCreate(ctx context.Context, code string) (*domain.Round, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	_, err := s.store.Get(ctx, code)
	if err == nil {
		return nil, errCodeTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check round code: %w", err)
	}

	round := domain.NewRound(code, s.letters.GenerateLetters(), s.opts.Duration, s.now())
	if err := s.store.Put(ctx, round); err != nil {
		return nil, fmt.Errorf("save round %s: %w", code, err)
	}
	return round, nil
}

// Get returns the round, finishing it first if its time has run out
func (s *GameService) Get(ctx context.Context, code string) (*domain.Round, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	round, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if !round.Expired(s.now()) {
		return round, nil
	}

	// Persist the finish under the lock so it cannot overwrite a word
	// submitted after the snapshot above was read.
	return s.update(ctx, code, func(*domain.Round) (bool, error) {
		return false, nil
	})
}

// Exists reports whether a round with the code is stored
func (s *GameService) Exists(ctx context.Context, code string) (bool, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return false, nil
	}

	_, err = s.store.Get(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Join adds a named player to a waiting round and returns the new player's ID
func (s *GameService) Join(ctx context.Context, code, name string) (string, *domain.Round, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return "", nil, err
	}

	var playerID string
	var player *domain.Player
	round, err := s.update(ctx, code, func(r *domain.Round) (bool, error) {
		playerID = s.newPlayerID()
		for _, taken := r.Players[playerID]; taken; _, taken = r.Players[playerID] {
			playerID = s.newPlayerID()
		}

		p, err := r.AddPlayer(playerID, name)
		if err != nil {
			return false, err
		}
		player = p
		return true, nil
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("code", code).Str("playerID", playerID).Str("name", player.Name).Msg("player-joined")
	s.publish(ctx, domain.NewPlayerEvent(domain.EventPlayerJoined, code, playerID, domain.PlayerJoinedPayload{
		Name:        player.Name,
		PlayerCount: len(round.Players),
	}))
	return playerID, round, nil
}

// Start starts a waiting round's timer
func (s *GameService) Start(ctx context.Context, code string) (*domain.Round, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	round, err := s.update(ctx, code, func(r *domain.Round) (bool, error) {
		if err := r.Start(s.now()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", code).Int("players", len(round.Players)).Msg("round-started")
	s.publish(ctx, domain.NewEvent(domain.EventRoundStarted, code, nil))
	return round, nil
}

// SubmitWord checks a player's word and records it if accepted. A rejected
// word is returned as a Submission with a reason, not as an error.
func (s *GameService) SubmitWord(ctx context.Context, code, playerID, word string) (domain.Submission, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return domain.Submission{}, err
	}

	var sub domain.Submission
	var score int
	_, err = s.update(ctx, code, func(r *domain.Round) (bool, error) {
		var err error
		sub, err = r.SubmitWord(playerID, word, s.dict)
		if err != nil {
			return false, err
		}
		if sub.Accepted {
			score = r.Players[playerID].Score
		}
		return sub.Accepted, nil
	})
	if err != nil {
		return domain.Submission{}, err
	}

	if !sub.Accepted {
		s.logger.Debug().Str("code", code).Str("playerID", playerID).Str("word", sub.Word).
			Str("reason", sub.Reason).Msg("word-rejected")
		return sub, nil
	}

	s.logger.Debug().Str("code", code).Str("playerID", playerID).Str("word", sub.Word).
		Int("points", sub.Points).Msg("word-accepted")
	s.publish(ctx, domain.NewPlayerEvent(domain.EventWordAccepted, code, playerID, domain.WordPayload{
		Word:   sub.Word,
		Points: sub.Points,
		Score:  score,
	}))
	return sub, nil
}

// RetractWord removes a word from a player's list. Retracting a word the
// player does not hold succeeds.
func (s *GameService) RetractWord(ctx context.Context, code, playerID, word string) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}

	var removed bool
	var score int
	_, err = s.update(ctx, code, func(r *domain.Round) (bool, error) {
		var err error
		removed, err = r.RetractWord(playerID, word)
		if err != nil {
			return false, err
		}
		score = r.Players[playerID].Score
		return removed, nil
	})
	if err != nil {
		return err
	}

	if removed {
		normalized := domain.NormalizeWord(word)
		s.logger.Debug().Str("code", code).Str("playerID", playerID).Str("word", normalized).Msg("word-retracted")
		s.publish(ctx, domain.NewPlayerEvent(domain.EventWordRetracted, code, playerID, domain.WordPayload{
			Word:  normalized,
			Score: score,
		}))
	}
	return nil
}

// update loads the round under its lock, finishes it if its time is up,
// applies fn and saves the result if anything changed. fn reports whether
// it modified the round.
func (s *GameService) update(ctx context.Context, code string, fn func(r *domain.Round) (bool, error)) (*domain.Round, error) {
	round, finished, err := s.updateLocked(ctx, code, fn)
	if finished {
		s.logger.Info().Str("code", code).Msg("round-finished")
		s.publish(ctx, domain.NewEvent(domain.EventRoundFinished, code, domain.RoundFinishedPayload{
			Standings: round.Standings(),
		}))
	}
	if err != nil {
		return nil, err
	}
	return round, nil
}

func (s *GameService) updateLocked(ctx context.Context, code string, fn func(r *domain.Round) (bool, error)) (*domain.Round, bool, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	round, err := s.store.Get(ctx, code)
	if err != nil {
		return nil, false, err
	}

	finished := round.Finalize(s.now())
	changed, opErr := fn(round)
	if finished || changed {
		if err := s.store.Put(ctx, round); err != nil {
			return nil, false, fmt.Errorf("save round %s: %w", code, err)
		}
	}
	return round, finished, opErr
}

// Sweep deletes rounds created longer ago than the retention window and
// returns how many were removed. Each round is locked only for its own delete.
func (s *GameService) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.opts.Retention)
	codes, err := s.store.CreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list expired rounds: %w", err)
	}

	purged := 0
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return purged, err
		}
		if err := s.purge(ctx, code); err != nil {
			s.logger.Error().Err(err).Str("code", code).Msg("round-purge-failed")
			continue
		}
		purged++
		s.publish(ctx, domain.NewEvent(domain.EventRoundPurged, code, nil))
	}
	return purged, nil
}

func (s *GameService) purge(ctx context.Context, code string) error {
	unlock := s.locks.Lock(code)
	defer unlock()
	return s.store.Delete(ctx, code)
}

// RunSweeper calls Sweep every interval until ctx is cancelled
func (s *GameService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error().Err(err).Msg("sweep-failed")
				continue
			}
			if n > 0 {
				s.logger.Info().Int("purged", n).Msg("stale-rounds-cleaned-up")
			}
		}
	}
}

// Stats returns the number of stored rounds
func (s *GameService) Stats(ctx context.Context) (Stats, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{ActiveGames: n}, nil
}

// Now returns the service clock's current time
func (s *GameService) Now() time.Time {
	return s.now()
}

func (s *GameService) publish(ctx context.Context, evt *domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("type", string(evt.Type)).Str("code", evt.Code).Msg("event-publish-failed")
	}
}

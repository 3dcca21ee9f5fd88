package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wordrush/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateGameResponse is the response for game creation
type CreateGameResponse struct {
	Code    string `json:"code"`
	Letters string `json:"letters"`
}

// GameSnapshot is a round as returned to clients
type GameSnapshot struct {
	*domain.Round
	TimeRemaining int               `json:"timeRemaining"` // seconds
	Standings     []domain.Standing `json:"standings"`
}

// GameExistsResponse is the response for checking if a game exists
type GameExistsResponse struct {
	Exists bool `json:"exists"`
}

// JoinRequest is the body of a join request
type JoinRequest struct {
	Name string `json:"name"`
}

// JoinResponse is the response for joining a game
type JoinResponse struct {
	PlayerID string        `json:"playerId"`
	Game     *GameSnapshot `json:"game"`
}

// WordRequest is the body of word submissions and retractions
type WordRequest struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}

// RetractResponse is the response for a retraction
type RetractResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status     string `json:"status"`
	Dictionary string `json:"dictionary"`
	Words      int    `json:"words"`
}

func (s *Server) snapshot(r *domain.Round) *GameSnapshot {
	return &GameSnapshot{
		Round:         r,
		TimeRemaining: int(r.Remaining(s.service.Now()).Round(time.Second) / time.Second),
		Standings:     r.Standings(),
	}
}

// handleCreateGame handles POST /api/games
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	round, err := s.service.Create(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("create-game-failed")
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create game")
		return
	}

	s.sendSuccess(w, &CreateGameResponse{
		Code:    round.Code,
		Letters: round.Letters,
	})
}

// handleGetGame handles GET /api/games/{code}
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	round, err := s.service.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, s.snapshot(round))
}

// handleGameExists handles GET /api/games/{code}/exists
func (s *Server) handleGameExists(w http.ResponseWriter, r *http.Request) {
	exists, err := s.service.Exists(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, &GameExistsResponse{Exists: exists})
}

// handleJoin handles POST /api/games/{code}/join
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if !s.decode(w, r, &req) {
		return
	}

	playerID, round, err := s.service.Join(r.Context(), chi.URLParam(r, "code"), req.Name)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, &JoinResponse{
		PlayerID: playerID,
		Game:     s.snapshot(round),
	})
}

// handleStart handles POST /api/games/{code}/start
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	round, err := s.service.Start(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, s.snapshot(round))
}

// handleSubmitWord handles POST /api/games/{code}/words
func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req WordRequest
	if !s.decode(w, r, &req) {
		return
	}

	sub, err := s.service.SubmitWord(r.Context(), chi.URLParam(r, "code"), req.PlayerID, req.Word)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, &sub)
}

// handleRetractWord handles DELETE /api/games/{code}/words
func (s *Server) handleRetractWord(w http.ResponseWriter, r *http.Request) {
	var req WordRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.RetractWord(r.Context(), chi.URLParam(r, "code"), req.PlayerID, req.Word); err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, &RetractResponse{Success: true})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := "loaded"
	if !s.dict.Loaded() {
		state = "empty"
	}
	s.sendSuccess(w, &HealthResponse{
		Status:     "ok",
		Dictionary: state,
		Words:      s.dict.Size(),
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	s.sendSuccess(w, &stats)
}

// decode reads a JSON body, answering 400 itself when it cannot
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendError(w, http.StatusBadRequest, "INVALID_INPUT", "Malformed request body")
		return false
	}
	return true
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendDomainError maps the error taxonomy onto HTTP statuses
func (s *Server) sendDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.sendError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		s.sendError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		s.sendError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		s.logger.Error().Err(err).Msg("request-failed")
		s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

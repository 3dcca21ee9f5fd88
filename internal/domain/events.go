package domain

import "time"

// EventType represents the type of round event
type EventType string

const (
	EventRoundCreated  EventType = "ROUND_CREATED"
	EventPlayerJoined  EventType = "PLAYER_JOINED"
	EventRoundStarted  EventType = "ROUND_STARTED"
	EventWordAccepted  EventType = "WORD_ACCEPTED"
	EventWordRetracted EventType = "WORD_RETRACTED"
	EventRoundFinished EventType = "ROUND_FINISHED"
	EventRoundPurged   EventType = "ROUND_PURGED"
)

// Event represents something that happened to a round
type Event struct {
	Type      EventType   `json:"type"`
	Code      string      `json:"code"`
	PlayerID  string      `json:"playerId,omitempty"` // If event is player-specific
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new round event
func NewEvent(eventType EventType, code string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Code:      code,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates a new player-specific round event
func NewPlayerEvent(eventType EventType, code, playerID string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Code:      code,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// RoundCreatedPayload is sent when a round is created
type RoundCreatedPayload struct {
	Letters  string `json:"letters"`
	Duration int    `json:"duration"`
}

// PlayerJoinedPayload is sent when a player joins the lobby
type PlayerJoinedPayload struct {
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
}

// WordPayload is sent when a player's word list changes
type WordPayload struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
	Score  int    `json:"score"`
}

// RoundFinishedPayload carries the final ranking
type RoundFinishedPayload struct {
	Standings []Standing `json:"standings"`
}

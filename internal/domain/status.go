package domain

// Status represents where a round is in its lifecycle
type Status string

const (
	StatusWaiting  Status = "waiting"  // Lobby open, players may join
	StatusActive   Status = "active"   // Timer running, words accepted
	StatusFinished Status = "finished" // Timer elapsed, results final
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from the current status to target is valid.
// Statuses only move forward; nothing leaves finished.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusWaiting:
		return target == StatusActive
	case StatusActive:
		return target == StatusFinished
	default:
		return false
	}
}

package domain

// Submission is the outcome of a word submission.
// A rejected word is a normal outcome, not an error.
type Submission struct {
	Accepted bool   `json:"accepted"`
	Word     string `json:"word"`
	Points   int    `json:"points,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Accept creates an accepted submission
func Accept(word string, points int) Submission {
	return Submission{
		Accepted: true,
		Word:     word,
		Points:   points,
	}
}

// Reject creates a rejected submission carrying the reason
func Reject(word, reason string) Submission {
	return Submission{
		Accepted: false,
		Word:     word,
		Reason:   reason,
	}
}

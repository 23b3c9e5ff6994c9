package domain

import "time"

// Rating bounds for feedback records.
const (
	RatingMin = 1
	RatingMax = 5
)

// Feedback is a rated comment owned by an Identity. Immutable after
// creation except for administrative deletion.
type Feedback struct {
	ID        string
	OwnerID   string
	Title     string
	Message   string
	Rating    int
	CreatedAt time.Time
}

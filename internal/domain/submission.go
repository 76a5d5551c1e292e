package domain

import "time"

// Submission is the final, immutable commit of all tickets for one
// allocation.
type Submission struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	Username         string    `json:"username,omitempty"`
	SpinAllocationID uint      `json:"spin_allocation_id"`
	Tickets          []Ticket  `json:"tickets"`
	CreatedAt        time.Time `json:"created_at"`
}

// Suggestion is a candidate set of lucky numbers plus the prose pitch that
// goes with it.
type Suggestion struct {
	Numbers     []int  `json:"numbers"`
	Explanation string `json:"explanation"`
}

package domain

import "time"

// SpinAllocation is the one-time grant of ticket slots a user wins on their
// single spin. IsUsed flips to true exactly once, when the matching
// submission is committed.
type SpinAllocation struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	TicketCount int       `json:"ticket_count"`
	IsUsed      bool      `json:"is_used"`
	CreatedAt   time.Time `json:"created_at"`
}

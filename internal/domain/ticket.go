package domain

import "errors"

// Power 6/55 rules: every ticket picks TicketSize distinct numbers
// between MinNumber and MaxNumber inclusive.
const (
	TicketSize = 6
	MinNumber  = 1
	MaxNumber  = 55
)

var (
	ErrTicketMalformed        = errors.New("a ticket must contain exactly 6 numbers between 1 and 55")
	ErrTicketDuplicateNumbers = errors.New("a ticket must not repeat a number")
)

// Ticket is one row of lucky numbers as the user submits them.
type Ticket []int

func (t Ticket) Validate() error {
	if len(t) != TicketSize {
		return ErrTicketMalformed
	}

	seen := make(map[int]struct{}, TicketSize)
	for _, n := range t {
		if n < MinNumber || n > MaxNumber {
			return ErrTicketMalformed
		}
		if _, ok := seen[n]; ok {
			return ErrTicketDuplicateNumbers
		}
		seen[n] = struct{}{}
	}

	return nil
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketValidate(t *testing.T) {
	tests := []struct {
		name    string
		ticket  Ticket
		wantErr error
	}{
		{"valid", Ticket{1, 2, 3, 4, 5, 55}, nil},
		{"nil", nil, ErrTicketMalformed},
		{"too short", Ticket{1, 2, 3, 4, 5}, ErrTicketMalformed},
		{"too long", Ticket{1, 2, 3, 4, 5, 6, 7}, ErrTicketMalformed},
		{"below range", Ticket{0, 2, 3, 4, 5, 6}, ErrTicketMalformed},
		{"above range", Ticket{1, 2, 3, 4, 5, 56}, ErrTicketMalformed},
		{"duplicate", Ticket{1, 1, 3, 4, 5, 6}, ErrTicketDuplicateNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ticket.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

package response

import "github.com/vietanh2810/lucky-ticket-api/internal/domain"

type LoginResponse struct {
	User domain.User `json:"user"`
}

type SpinResponse struct {
	AllocationID uint `json:"allocation_id"`
	TicketCount  int  `json:"ticket_count"`
	AlreadySpun  bool `json:"already_spun"`
}

type SubmitResponse struct {
	SubmissionID uint `json:"submission_id"`
}

type SubmissionsResponse struct {
	Submissions []domain.Submission `json:"submissions"`
}

type MeResponse struct {
	User       domain.User            `json:"user"`
	Allocation *domain.SpinAllocation `json:"allocation,omitempty"`
}

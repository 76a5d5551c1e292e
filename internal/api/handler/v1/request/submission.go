package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitRequest struct {
	AllocationID uint    `json:"allocation_id"`
	Tickets      [][]int `json:"tickets"`
}

// Validate only checks presence; the per-ticket rules (size, range,
// distinctness) belong to the submission service so their error order is
// the documented one.
func (req *SubmitRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AllocationID, validation.Required),
		validation.Field(&req.Tickets, validation.Required),
	)
}

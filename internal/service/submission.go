package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository"
)

var (
	ErrInvalidPayload      = domain.ErrTicketMalformed
	ErrDuplicateNumbers    = domain.ErrTicketDuplicateNumbers
	ErrInvalidAllocation   = errors.New("spin allocation does not exist or belongs to another user")
	ErrAllocationUsed      = repository.ErrAllocationUsed
	ErrTicketCountMismatch = errors.New("number of tickets does not match the allocation")
	ErrForbidden           = errors.New("admin role required")
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
}

type SubmissionService struct {
	repo           SubmissionRepository
	allocationRepo SpinAllocationRepository
}

func NewSubmissionService(repo SubmissionRepository, allocationRepo SpinAllocationRepository) *SubmissionService {
	return &SubmissionService{
		repo:           repo,
		allocationRepo: allocationRepo,
	}
}

// Submit validates and commits the user's final tickets. Checks run in a
// fixed order so the caller always sees the earliest failing condition. The
// IsUsed check here is only a fast path; the repository's conditional
// update is what makes the submission exactly-once under concurrency.
func (s *SubmissionService) Submit(ctx context.Context, userID, allocationID uint, tickets []domain.Ticket) (domain.Submission, error) {
	if len(tickets) == 0 {
		return domain.Submission{}, ErrInvalidPayload
	}
	for _, ticket := range tickets {
		if err := ticket.Validate(); err != nil {
			return domain.Submission{}, err
		}
	}

	allocation, err := s.allocationRepo.FindByID(ctx, allocationID)
	if err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return domain.Submission{}, ErrInvalidAllocation
		}

		return domain.Submission{}, fmt.Errorf("s.allocationRepo.FindByID -> %w", err)
	}
	if allocation.UserID != userID {
		return domain.Submission{}, ErrInvalidAllocation
	}
	if allocation.IsUsed {
		return domain.Submission{}, ErrAllocationUsed
	}
	if len(tickets) != allocation.TicketCount {
		return domain.Submission{}, ErrTicketCountMismatch
	}

	created, err := s.repo.Create(ctx, domain.Submission{
		UserID:           userID,
		SpinAllocationID: allocationID,
		Tickets:          tickets,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAllocationUsed) {
			return domain.Submission{}, ErrAllocationUsed
		}

		return domain.Submission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListSubmissions returns every submission, newest first, for admin eyes
// only.
func (s *SubmissionService) ListSubmissions(ctx context.Context, callerRole string) ([]domain.Submission, error) {
	if callerRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	submissions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return submissions, nil
}

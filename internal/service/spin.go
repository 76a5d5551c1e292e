package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository"
)

var ErrAllocationNotFound = repository.ErrAllocationNotFound

type SpinAllocationRepository interface {
	Create(ctx context.Context, allocation domain.SpinAllocation) (domain.SpinAllocation, error)
	FindByID(ctx context.Context, id uint) (domain.SpinAllocation, error)
	FindLatestByUserID(ctx context.Context, userID uint) (domain.SpinAllocation, error)
}

// SpinService grants each user their one-time ticket allotment.
type SpinService struct {
	repo    SpinAllocationRepository
	weights []int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSpinService(repo SpinAllocationRepository, weights []int) *SpinService {
	return &SpinService{
		repo:    repo,
		weights: weights,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Spin returns the user's allocation, rolling a new one only if they have
// never spun. The second return value reports whether the allocation
// already existed.
func (s *SpinService) Spin(ctx context.Context, userID uint) (domain.SpinAllocation, bool, error) {
	existing, err := s.repo.FindLatestByUserID(ctx, userID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, repository.ErrAllocationNotFound) {
		return domain.SpinAllocation{}, false, fmt.Errorf("s.repo.FindLatestByUserID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.SpinAllocation{
		UserID:      userID,
		TicketCount: s.drawTicketCount(),
	})
	if err != nil {
		// A concurrent spin won the unique-index race; hand back the
		// winner's allocation instead of surfacing a conflict.
		if errors.Is(err, repository.ErrAllocationExists) {
			winner, ferr := s.repo.FindLatestByUserID(ctx, userID)
			if ferr != nil {
				return domain.SpinAllocation{}, false, fmt.Errorf("s.repo.FindLatestByUserID -> %w", ferr)
			}
			return winner, true, nil
		}

		return domain.SpinAllocation{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, false, nil
}

// Current returns the user's allocation without ever rolling a new one.
func (s *SpinService) Current(ctx context.Context, userID uint) (domain.SpinAllocation, error) {
	allocation, err := s.repo.FindLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAllocationNotFound) {
			return domain.SpinAllocation{}, ErrAllocationNotFound
		}

		return domain.SpinAllocation{}, fmt.Errorf("s.repo.FindLatestByUserID -> %w", err)
	}

	return allocation, nil
}

func (s *SpinService) drawTicketCount() int {
	s.mu.Lock()
	roll := s.rng.Float64() * 100
	s.mu.Unlock()

	return ticketCountForRoll(s.weights, roll)
}

// ticketCountForRoll maps one Uniform[0,100) roll onto cumulative weight
// buckets. Strict comparisons put a roll landing exactly on a boundary into
// the higher bucket, so weights of 10/20/... give [0,10) one ticket,
// [10,30) two, and so on.
func ticketCountForRoll(weights []int, roll float64) int {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += float64(w)
		if roll < cumulative {
			return i + 1
		}
	}

	return len(weights)
}

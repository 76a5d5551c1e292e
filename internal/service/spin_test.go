package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository"
)

var testWeights = []int{10, 20, 30, 25, 15}

type fakeAllocationRepo struct {
	createFn           func(ctx context.Context, allocation domain.SpinAllocation) (domain.SpinAllocation, error)
	findByIDFn         func(ctx context.Context, id uint) (domain.SpinAllocation, error)
	findLatestByUserFn func(ctx context.Context, userID uint) (domain.SpinAllocation, error)
}

func (f *fakeAllocationRepo) Create(ctx context.Context, allocation domain.SpinAllocation) (domain.SpinAllocation, error) {
	return f.createFn(ctx, allocation)
}

func (f *fakeAllocationRepo) FindByID(ctx context.Context, id uint) (domain.SpinAllocation, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeAllocationRepo) FindLatestByUserID(ctx context.Context, userID uint) (domain.SpinAllocation, error) {
	return f.findLatestByUserFn(ctx, userID)
}

// memoryAllocationRepo behaves like the real repository over a map, one
// allocation per user.
type memoryAllocationRepo struct {
	nextID uint
	byUser map[uint]domain.SpinAllocation
}

func newMemoryAllocationRepo() *memoryAllocationRepo {
	return &memoryAllocationRepo{
		nextID: 1,
		byUser: make(map[uint]domain.SpinAllocation),
	}
}

func (m *memoryAllocationRepo) Create(_ context.Context, allocation domain.SpinAllocation) (domain.SpinAllocation, error) {
	if _, ok := m.byUser[allocation.UserID]; ok {
		return domain.SpinAllocation{}, repository.ErrAllocationExists
	}

	allocation.ID = m.nextID
	m.nextID++
	m.byUser[allocation.UserID] = allocation

	return allocation, nil
}

func (m *memoryAllocationRepo) FindByID(_ context.Context, id uint) (domain.SpinAllocation, error) {
	for _, allocation := range m.byUser {
		if allocation.ID == id {
			return allocation, nil
		}
	}

	return domain.SpinAllocation{}, repository.ErrAllocationNotFound
}

func (m *memoryAllocationRepo) FindLatestByUserID(_ context.Context, userID uint) (domain.SpinAllocation, error) {
	allocation, ok := m.byUser[userID]
	if !ok {
		return domain.SpinAllocation{}, repository.ErrAllocationNotFound
	}

	return allocation, nil
}

func TestSpin_FirstThenSecondSpin(t *testing.T) {
	svc := NewSpinService(newMemoryAllocationRepo(), testWeights)

	first, alreadySpun, err := svc.Spin(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, alreadySpun)
	assert.GreaterOrEqual(t, first.TicketCount, 1)
	assert.LessOrEqual(t, first.TicketCount, len(testWeights))

	second, alreadySpun, err := svc.Spin(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, alreadySpun)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TicketCount, second.TicketCount)
}

func TestSpin_RaceLoserGetsWinnersAllocation(t *testing.T) {
	winner := domain.SpinAllocation{ID: 11, UserID: 7, TicketCount: 4}
	lookups := 0
	repo := &fakeAllocationRepo{
		findLatestByUserFn: func(_ context.Context, userID uint) (domain.SpinAllocation, error) {
			lookups++
			if lookups == 1 {
				// The racing spin has not inserted yet at first read.
				return domain.SpinAllocation{}, repository.ErrAllocationNotFound
			}
			return winner, nil
		},
		createFn: func(_ context.Context, _ domain.SpinAllocation) (domain.SpinAllocation, error) {
			return domain.SpinAllocation{}, repository.ErrAllocationExists
		},
	}

	svc := NewSpinService(repo, testWeights)

	allocation, alreadySpun, err := svc.Spin(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, alreadySpun)
	assert.Equal(t, winner, allocation)
}

func TestSpin_RepoFailure(t *testing.T) {
	repo := &fakeAllocationRepo{
		findLatestByUserFn: func(_ context.Context, _ uint) (domain.SpinAllocation, error) {
			return domain.SpinAllocation{}, errors.New("connection refused")
		},
	}

	_, _, err := NewSpinService(repo, testWeights).Spin(context.Background(), 7)
	assert.Error(t, err)
}

func TestCurrent(t *testing.T) {
	repo := newMemoryAllocationRepo()
	svc := NewSpinService(repo, testWeights)

	_, err := svc.Current(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAllocationNotFound)

	created, _, err := svc.Spin(context.Background(), 7)
	require.NoError(t, err)

	current, err := svc.Current(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
}

func TestTicketCountForRoll_Boundaries(t *testing.T) {
	tests := []struct {
		roll float64
		want int
	}{
		{0, 1},
		{9.999, 1},
		{10, 2}, // boundary rolls land in the higher bucket
		{29.999, 2},
		{30, 3},
		{59.999, 3},
		{60, 4},
		{84.999, 4},
		{85, 5},
		{99.999, 5},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, ticketCountForRoll(testWeights, tt.roll), "roll %v", tt.roll)
	}
}

func TestTicketCountForRoll_Distribution(t *testing.T) {
	const draws = 200000

	rng := rand.New(rand.NewSource(1))
	counts := make([]int, len(testWeights)+1)
	for i := 0; i < draws; i++ {
		got := ticketCountForRoll(testWeights, rng.Float64()*100)
		require.GreaterOrEqual(t, got, 1)
		require.LessOrEqual(t, got, len(testWeights))
		counts[got]++
	}

	for outcome, weight := range map[int]float64{1: 10, 2: 20, 3: 30, 4: 25, 5: 15} {
		share := float64(counts[outcome]) / draws * 100
		assert.InDeltaf(t, weight, share, 1.0, "outcome %d", outcome)
	}
}

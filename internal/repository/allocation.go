package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository/dao"
)

var (
	ErrAllocationExists   = dao.ErrAllocationExists
	ErrAllocationNotFound = dao.ErrAllocationNotFound
)

type SpinAllocationDAO interface {
	Insert(ctx context.Context, allocation dao.SpinAllocation) (dao.SpinAllocation, error)
	FindByID(ctx context.Context, id uint) (dao.SpinAllocation, error)
	FindLatestByUserID(ctx context.Context, userID uint) (dao.SpinAllocation, error)
}

type SpinAllocationRepository struct {
	dao SpinAllocationDAO
}

func NewSpinAllocationRepository(dao SpinAllocationDAO) *SpinAllocationRepository {
	return &SpinAllocationRepository{
		dao: dao,
	}
}

func (r *SpinAllocationRepository) Create(ctx context.Context, allocation domain.SpinAllocation) (domain.SpinAllocation, error) {
	created, err := r.dao.Insert(ctx, dao.SpinAllocation{
		UserID:      allocation.UserID,
		TicketCount: allocation.TicketCount,
	})
	if err != nil {
		return domain.SpinAllocation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SpinAllocationRepository) FindByID(ctx context.Context, id uint) (domain.SpinAllocation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SpinAllocation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SpinAllocationRepository) FindLatestByUserID(ctx context.Context, userID uint) (domain.SpinAllocation, error) {
	found, err := r.dao.FindLatestByUserID(ctx, userID)
	if err != nil {
		return domain.SpinAllocation{}, fmt.Errorf("r.dao.FindLatestByUserID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SpinAllocationRepository) daoToDomain(a dao.SpinAllocation) domain.SpinAllocation {
	return domain.SpinAllocation{
		ID:          a.ID,
		UserID:      a.UserID,
		TicketCount: a.TicketCount,
		IsUsed:      a.IsUsed,
		CreatedAt:   a.CreatedAt,
	}
}

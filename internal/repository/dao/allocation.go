package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAllocationExists   = errors.New("user already has a spin allocation")
	ErrAllocationNotFound = errors.New("spin allocation not found")
)

// SpinAllocation rows are never updated except for the IsUsed flag, and
// never deleted. The unique index on UserID is what makes the spin
// one-time: a concurrent duplicate insert loses at the database, not in
// application code.
type SpinAllocation struct {
	ID uint `gorm:"primaryKey"`

	UserID      uint `gorm:"uniqueIndex;not null"`
	User        User `gorm:"foreignKey:UserID"`
	TicketCount int  `gorm:"not null"`
	IsUsed      bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type SpinAllocationDAO struct {
	db *gorm.DB
}

func NewSpinAllocationDAO(db *gorm.DB) *SpinAllocationDAO {
	return &SpinAllocationDAO{
		db: db,
	}
}

func (d *SpinAllocationDAO) Insert(ctx context.Context, allocation SpinAllocation) (SpinAllocation, error) {
	result := d.db.WithContext(ctx).Create(&allocation)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_spin_allocations_user_id") {
			return SpinAllocation{}, ErrAllocationExists
		}

		return SpinAllocation{}, result.Error
	}

	return allocation, nil
}

func (d *SpinAllocationDAO) FindByID(ctx context.Context, id uint) (SpinAllocation, error) {
	var allocation SpinAllocation

	result := d.db.WithContext(ctx).First(&allocation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpinAllocation{}, ErrAllocationNotFound
		}

		return SpinAllocation{}, result.Error
	}

	return allocation, nil
}

func (d *SpinAllocationDAO) FindLatestByUserID(ctx context.Context, userID uint) (SpinAllocation, error) {
	var allocation SpinAllocation

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&allocation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpinAllocation{}, ErrAllocationNotFound
		}

		return SpinAllocation{}, result.Error
	}

	return allocation, nil
}

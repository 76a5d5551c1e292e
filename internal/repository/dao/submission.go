package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAllocationUsed = errors.New("spin allocation already used")

type Submission struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`

	SpinAllocationID uint `gorm:"uniqueIndex;not null"`

	// Tickets holds the JSON-encoded [][]int the user submitted.
	Tickets string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

// Insert commits the submission and consumes its allocation in one
// transaction. The conditional update is the serializing guard: of two
// concurrent submitters, only the one that flips is_used gets to insert.
func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&SpinAllocation{}).
			Where("id = ? AND is_used = ?", submission.SpinAllocationID, false).
			Update("is_used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAllocationUsed
		}

		return tx.Create(&submission).Error
	})
	if err != nil {
		return Submission{}, err
	}

	return submission, nil
}

func (d *SubmissionDAO) ListAll(ctx context.Context) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) CountByAllocationID(ctx context.Context, allocationID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("spin_allocation_id = ?", allocationID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

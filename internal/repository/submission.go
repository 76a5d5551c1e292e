package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository/dao"
)

var ErrAllocationUsed = dao.ErrAllocationUsed

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	ListAll(ctx context.Context) ([]dao.Submission, error)
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	tickets, err := json.Marshal(submission.Tickets)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	created, err := r.dao.Insert(ctx, dao.Submission{
		UserID:           submission.UserID,
		SpinAllocationID: submission.SpinAllocationID,
		Tickets:          string(tickets),
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *SubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	found, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submission, err := r.daoToDomain(s)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, nil
}

func (r *SubmissionRepository) daoToDomain(s dao.Submission) (domain.Submission, error) {
	var tickets []domain.Ticket
	if err := json.Unmarshal([]byte(s.Tickets), &tickets); err != nil {
		return domain.Submission{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return domain.Submission{
		ID:               s.ID,
		UserID:           s.UserID,
		Username:         s.User.Username,
		SpinAllocationID: s.SpinAllocationID,
		Tickets:          tickets,
		CreatedAt:        s.CreatedAt,
	}, nil
}

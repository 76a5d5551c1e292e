package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionDAO_Insert_ConsumesAllocation(t *testing.T) {
	db := newTestDB(t)
	user := insertTestUser(t, db, "alice")

	allocation, err := NewSpinAllocationDAO(db).Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 1,
	})
	require.NoError(t, err)

	submissionDAO := NewSubmissionDAO(db)
	created, err := submissionDAO.Insert(context.Background(), Submission{
		UserID:           user.ID,
		SpinAllocationID: allocation.ID,
		Tickets:          `[[1,2,3,4,5,6]]`,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	used, err := NewSpinAllocationDAO(db).FindByID(context.Background(), allocation.ID)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)
}

func TestSubmissionDAO_Insert_SecondSubmitFails(t *testing.T) {
	db := newTestDB(t)
	user := insertTestUser(t, db, "alice")

	allocation, err := NewSpinAllocationDAO(db).Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 1,
	})
	require.NoError(t, err)

	submissionDAO := NewSubmissionDAO(db)
	_, err = submissionDAO.Insert(context.Background(), Submission{
		UserID:           user.ID,
		SpinAllocationID: allocation.ID,
		Tickets:          `[[1,2,3,4,5,6]]`,
	})
	require.NoError(t, err)

	_, err = submissionDAO.Insert(context.Background(), Submission{
		UserID:           user.ID,
		SpinAllocationID: allocation.ID,
		Tickets:          `[[7,8,9,10,11,12]]`,
	})
	assert.ErrorIs(t, err, ErrAllocationUsed)

	count, err := submissionDAO.CountByAllocationID(context.Background(), allocation.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmissionDAO_Insert_FailedInsertRollsBackUseFlag(t *testing.T) {
	db := newTestDB(t)
	user := insertTestUser(t, db, "alice")

	allocationDAO := NewSpinAllocationDAO(db)
	allocation, err := allocationDAO.Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 1,
	})
	require.NoError(t, err)

	submissionDAO := NewSubmissionDAO(db)
	first, err := submissionDAO.Insert(context.Background(), Submission{
		UserID:           user.ID,
		SpinAllocationID: allocation.ID,
		Tickets:          `[[1,2,3,4,5,6]]`,
	})
	require.NoError(t, err)

	other := insertTestUser(t, db, "bob")
	otherAllocation, err := allocationDAO.Insert(context.Background(), SpinAllocation{
		UserID:      other.ID,
		TicketCount: 1,
	})
	require.NoError(t, err)

	// Forcing a primary-key collision makes the insert fail after the
	// conditional update succeeded, so the whole transaction must roll back
	// and leave the fresh allocation unused.
	_, err = submissionDAO.Insert(context.Background(), Submission{
		ID:               first.ID,
		UserID:           other.ID,
		SpinAllocationID: otherAllocation.ID,
		Tickets:          `[[1,2,3,4,5,6]]`,
	})
	assert.Error(t, err)

	fresh, err := allocationDAO.FindByID(context.Background(), otherAllocation.ID)
	require.NoError(t, err)
	assert.False(t, fresh.IsUsed)

	count, err := submissionDAO.CountByAllocationID(context.Background(), otherAllocation.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSubmissionDAO_ListAll(t *testing.T) {
	db := newTestDB(t)
	submissionDAO := NewSubmissionDAO(db)

	// Empty store is not an error.
	submissions, err := submissionDAO.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, submissions)

	alice := insertTestUser(t, db, "alice")
	bob := insertTestUser(t, db, "bob")
	allocationDAO := NewSpinAllocationDAO(db)

	for _, user := range []User{alice, bob} {
		allocation, err := allocationDAO.Insert(context.Background(), SpinAllocation{
			UserID:      user.ID,
			TicketCount: 1,
		})
		require.NoError(t, err)

		_, err = submissionDAO.Insert(context.Background(), Submission{
			UserID:           user.ID,
			SpinAllocationID: allocation.ID,
			Tickets:          `[[1,2,3,4,5,6]]`,
		})
		require.NoError(t, err)
	}

	submissions, err = submissionDAO.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	for _, submission := range submissions {
		assert.NotEmpty(t, submission.User.Username)
	}
}

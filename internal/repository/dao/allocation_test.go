package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinAllocationDAO_Insert_OnePerUser(t *testing.T) {
	db := newTestDB(t)
	user := insertTestUser(t, db, "alice")
	allocationDAO := NewSpinAllocationDAO(db)

	created, err := allocationDAO.Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsUsed)

	_, err = allocationDAO.Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 5,
	})
	assert.ErrorIs(t, err, ErrAllocationExists)

	// The loser of a duplicate insert must be able to read the winner's row.
	winner, err := allocationDAO.FindLatestByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, winner.ID)
	assert.Equal(t, 3, winner.TicketCount)
}

func TestSpinAllocationDAO_FindLatestByUserID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewSpinAllocationDAO(db).FindLatestByUserID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestSpinAllocationDAO_FindByID(t *testing.T) {
	db := newTestDB(t)
	user := insertTestUser(t, db, "bob")
	allocationDAO := NewSpinAllocationDAO(db)

	created, err := allocationDAO.Insert(context.Background(), SpinAllocation{
		UserID:      user.ID,
		TicketCount: 2,
	})
	require.NoError(t, err)

	found, err := allocationDAO.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, user.ID, found.UserID)

	_, err = allocationDAO.FindByID(context.Background(), created.ID+1)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

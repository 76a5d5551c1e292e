package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory db")

	require.NoError(t, InitTables(db), "failed to migrate db")

	return db
}

func insertTestUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()

	user, err := NewUserDAO(db).Insert(context.Background(), User{
		Username: username,
		Password: "hash",
		Role:     "USER",
	})
	require.NoError(t, err)

	return user
}

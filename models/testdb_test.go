package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Post{}, &Follow{}))
	return db
}

// seedUser registers an account through the real registration path so hashes
// and normalization match production rows. Username must be plain alnum.
func seedUser(t *testing.T, db *gorm.DB, username string) *User {
	t.Helper()
	user, err := NewUserStore(db).Register(RegistrationInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "a long enough password",
	})
	require.NoError(t, err)
	return user
}

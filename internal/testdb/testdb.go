// Package testdb opens throwaway in-memory databases for tests.
package testdb

import (
	"testing"

	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory SQLite database that is closed when the test ends
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// User inserts a user with the given name
func User(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Link inserts a link posted by user, which may be nil
func Link(t testing.TB, db *gorm.DB, description, url string, user *models.User) *models.Link {
	t.Helper()
	link := &models.Link{Description: description, URL: url}
	if user != nil {
		link.PostedByID = &user.ID
	}
	require.NoError(t, db.Create(link).Error)
	return link
}

// Vote records a vote of user on link
func Vote(t testing.TB, db *gorm.DB, link *models.Link, user *models.User) {
	t.Helper()
	require.NoError(t, db.Model(link).Association("Voters").Append(user))
}

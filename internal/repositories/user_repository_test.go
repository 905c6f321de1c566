package repositories_test

import (
	"context"
	"testing"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/internal/testdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	db := testdb.Open(t)
	alice, links := seed(t, db)
	repo := repositories.NewGormUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindByID(ctx, alice.ID, includes.Includes{"links": nil, "votes": nil})
	require.NoError(t, err)
	require.Len(t, user.Links, 2)
	require.Len(t, user.Votes, 1)
	require.Equal(t, links[0].ID, user.Votes[0].ID)

	user, err = repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)

	uid := "firebase-carol"
	carol := &models.User{Name: "carol", Email: "carol@example.com", FirebaseUID: &uid}
	require.NoError(t, repo.Create(ctx, carol))

	user, err = repo.FindByFirebaseUID(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, carol.ID, user.ID)

	_, err = repo.FindByFirebaseUID(ctx, "nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.Error(t, repo.Create(ctx, &models.User{Name: "dup", Email: "alice@example.com"}), "email is unique")
}

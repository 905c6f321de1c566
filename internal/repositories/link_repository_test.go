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

func ptr[T any](v T) *T { return &v }

func descriptions(links []models.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Description
	}
	return out
}

func seed(t *testing.T, db *gorm.DB) (*models.User, []*models.Link) {
	alice := testdb.User(t, db, "alice")
	bob := testdb.User(t, db, "bob")
	links := []*models.Link{
		testdb.Link(t, db, "golang weekly", "https://golangweekly.com", alice),
		testdb.Link(t, db, "prisma docs", "https://www.prisma.io/docs", alice),
		testdb.Link(t, db, "a 100% real link", "https://example.com/go", bob),
		testdb.Link(t, db, "orphan", "https://orphan.example.org", nil),
	}
	testdb.Vote(t, db, links[0], bob)
	testdb.Vote(t, db, links[0], alice)
	return alice, links
}

func TestFindManyFilter(t *testing.T) {
	db := testdb.Open(t)
	seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	links, err := repo.FindMany(ctx, repositories.LinkQuery{Filter: "go"})
	require.NoError(t, err)
	// "go" is in the description of the first, and the url of the first and third
	require.Equal(t, []string{"golang weekly", "a 100% real link"}, descriptions(links))

	count, err := repo.Count(ctx, "go")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	// wildcards are matched literally
	links, err = repo.FindMany(ctx, repositories.LinkQuery{Filter: "100%"})
	require.NoError(t, err)
	require.Equal(t, []string{"a 100% real link"}, descriptions(links))

	count, err = repo.Count(ctx, "")
	require.NoError(t, err)
	require.EqualValues(t, 4, count)
}

func TestFindManyPagingAndOrder(t *testing.T) {
	db := testdb.Open(t)
	seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	links, err := repo.FindMany(ctx, repositories.LinkQuery{
		OrderBy: []repositories.LinkOrder{{Field: "description", Desc: true}},
		Skip:    ptr(1),
		Take:    ptr(2),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"prisma docs", "golang weekly"}, descriptions(links))

	links, err = repo.FindMany(ctx, repositories.LinkQuery{
		OrderBy: []repositories.LinkOrder{{Field: "url"}},
		Take:    ptr(1),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a 100% real link"}, descriptions(links))

	_, err = repo.FindMany(ctx, repositories.LinkQuery{OrderBy: []repositories.LinkOrder{{Field: "password"}}})
	require.Error(t, err)
}

func TestFindManyIncludes(t *testing.T) {
	db := testdb.Open(t)
	seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	links, err := repo.FindMany(ctx, repositories.LinkQuery{Take: ptr(1)})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Nil(t, links[0].PostedBy)
	require.Empty(t, links[0].Voters)

	links, err = repo.FindMany(ctx, repositories.LinkQuery{
		Take:     ptr(1),
		Includes: includes.Includes{"postedBy": nil, "voters": includes.Includes{"links": nil}},
	})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.NotNil(t, links[0].PostedBy)
	require.Equal(t, "alice", links[0].PostedBy.Name)
	require.Len(t, links[0].Voters, 2)
	for _, voter := range links[0].Voters {
		if voter.Name == "alice" {
			require.Len(t, voter.Links, 2)
		} else {
			require.Len(t, voter.Links, 1)
		}
	}
}

func TestFindByID(t *testing.T) {
	db := testdb.Open(t)
	_, links := seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	link, err := repo.FindByID(ctx, links[1].ID, includes.Includes{"postedBy": nil})
	require.NoError(t, err)
	require.Equal(t, "prisma docs", link.Description)
	require.Equal(t, "alice", link.PostedBy.Name)

	link, err = repo.FindByID(ctx, 9999, nil)
	require.NoError(t, err)
	require.Nil(t, link)
}

func TestCreate(t *testing.T) {
	db := testdb.Open(t)
	alice := testdb.User(t, db, "alice")
	repo := repositories.NewGormLinkRepository(db)

	link := &models.Link{Description: "new", URL: "https://new.example.com", PostedByID: &alice.ID}
	require.NoError(t, repo.Create(context.Background(), link, includes.Includes{"postedBy": nil}))
	require.NotZero(t, link.ID)
	require.False(t, link.CreatedAt.IsZero())
	require.Equal(t, "alice", link.PostedBy.Name)
}

func TestUpdate(t *testing.T) {
	db := testdb.Open(t)
	_, links := seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	link, err := repo.Update(ctx, links[1].ID, repositories.LinkPatch{Description: ptr("prisma")}, nil)
	require.NoError(t, err)
	require.Equal(t, "prisma", link.Description)
	require.Equal(t, "https://www.prisma.io/docs", link.URL)

	link, err = repo.Update(ctx, links[1].ID, repositories.LinkPatch{}, includes.Includes{"postedBy": nil})
	require.NoError(t, err)
	require.Equal(t, "prisma", link.Description)
	require.Equal(t, "alice", link.PostedBy.Name)

	_, err = repo.Update(ctx, 9999, repositories.LinkPatch{URL: ptr("https://x.example.com")}, nil)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	db := testdb.Open(t)
	_, links := seed(t, db)
	repo := repositories.NewGormLinkRepository(db)
	ctx := context.Background()

	link, err := repo.Delete(ctx, links[0].ID, includes.Includes{"voters": nil})
	require.NoError(t, err)
	require.Equal(t, "golang weekly", link.Description)
	require.Len(t, link.Voters, 2)

	gone, err := repo.FindByID(ctx, links[0].ID, nil)
	require.NoError(t, err)
	require.Nil(t, gone)

	var votes int64
	require.NoError(t, db.Table("votes").Where("link_id = ?", links[0].ID).Count(&votes).Error)
	require.Zero(t, votes)

	_, err = repo.Delete(ctx, links[0].ID, nil)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

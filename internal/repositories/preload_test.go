package repositories

import (
	"testing"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"github.com/stretchr/testify/require"
)

func TestPreloadPaths(t *testing.T) {
	inc := includes.Includes{
		"postedBy": includes.Includes{"votes": nil},
		"voters":   includes.Includes{"links": includes.Includes{"postedBy": nil}},
		"count":    nil, // not a relation
	}
	require.Equal(t, []string{
		"PostedBy",
		"PostedBy.Votes",
		"Voters",
		"Voters.Links",
		"Voters.Links.PostedBy",
	}, preloadPaths(linkModel, inc))

	require.Equal(t, []string{"Links"}, preloadPaths(userModel, includes.Includes{"links": nil, "voters": nil}))
	require.Empty(t, preloadPaths(linkModel, nil))
}

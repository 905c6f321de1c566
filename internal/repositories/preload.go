package repositories

import (
	"slices"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"gorm.io/gorm"
)

const (
	linkModel = "Link"
	userModel = "User"
)

// relation maps a GraphQL relation field to the gorm association that backs it
type relation struct {
	field  string
	target string
}

var relations = map[string]map[string]relation{
	linkModel: {
		"postedBy": {field: "PostedBy", target: userModel},
		"voters":   {field: "Voters", target: userModel},
	},
	userModel: {
		"links": {field: "Links", target: linkModel},
		"votes": {field: "Votes", target: linkModel},
	},
}

// preloadPaths turns an include tree rooted at model into gorm preload paths
// (voters.links -> Voters.Links). Names that are not relations of the model are skipped.
func preloadPaths(model string, inc includes.Includes) []string {
	var paths []string
	for name, sub := range inc {
		rel, ok := relations[model][name]
		if !ok {
			continue
		}
		paths = append(paths, rel.field)
		for _, p := range preloadPaths(rel.target, sub) {
			paths = append(paths, rel.field+"."+p)
		}
	}
	slices.Sort(paths)
	return paths
}

func preload(db *gorm.DB, model string, inc includes.Includes) *gorm.DB {
	for _, p := range preloadPaths(model, inc) {
		db = db.Preload(p)
	}
	return db
}

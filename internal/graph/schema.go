// Package graph defines the GraphQL schema of the link feed and its resolvers.
package graph

import (
	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/graphql-go/graphql"
)

var sortEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Sort",
	Values: graphql.EnumValueConfigMap{
		"asc":  &graphql.EnumValueConfig{Value: "asc"},
		"desc": &graphql.EnumValueConfig{Value: "desc"},
	},
})

var linkOrderByInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LinkOrderByInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"description": &graphql.InputObjectFieldConfig{Type: sortEnum},
		"url":         &graphql.InputObjectFieldConfig{Type: sortEnum},
		"createdAt":   &graphql.InputObjectFieldConfig{Type: sortEnum},
	},
})

var linkIncludesInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LinkIncludes",
	Fields: graphql.InputObjectConfigFieldMap{
		"postedBy": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
		"voters":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
	},
})

// feed is the result of the feed query
type feed struct {
	Links []models.Link
	Count int64
	ID    string
}

func asLink(src interface{}) (*models.Link, bool) {
	switch l := src.(type) {
	case *models.Link:
		return l, l != nil
	case models.Link:
		return &l, true
	}
	return nil, false
}

func asUser(src interface{}) (*models.User, bool) {
	switch u := src.(type) {
	case *models.User:
		return u, u != nil
	case models.User:
		return &u, true
	}
	return nil, false
}

func linkField(get func(*models.Link) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if l, ok := asLink(p.Source); ok {
			return get(l), nil
		}
		return nil, nil
	}
}

func userField(get func(*models.User) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if u, ok := asUser(p.Source); ok {
			return get(u), nil
		}
		return nil, nil
	}
}

// Relations resolve to null unless they were loaded by the parent's include tree.

func newUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: userField(func(u *models.User) interface{} { return int(u.ID) }),
			},
			"name": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *models.User) interface{} { return u.Name }),
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *models.User) interface{} { return u.Email }),
			},
		},
	})
}

func newLinkType(userType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Link",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: linkField(func(l *models.Link) interface{} { return int(l.ID) }),
			},
			"description": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: linkField(func(l *models.Link) interface{} { return l.Description }),
			},
			"url": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: linkField(func(l *models.Link) interface{} { return l.URL }),
			},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: linkField(func(l *models.Link) interface{} { return l.CreatedAt }),
			},
			"postedBy": &graphql.Field{
				Type: userType,
				Resolve: linkField(func(l *models.Link) interface{} {
					if l.PostedBy == nil {
						return nil
					}
					return l.PostedBy
				}),
			},
			"voters": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(userType)),
				Resolve: linkField(func(l *models.Link) interface{} {
					if l.Voters == nil {
						return nil
					}
					return l.Voters
				}),
			},
		},
	})
}

func newFeedType(linkType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Feed",
		Fields: graphql.Fields{
			"links": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(linkType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*feed).Links, nil
				},
			},
			"count": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*feed).Count), nil
				},
			},
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*feed).ID, nil
				},
			},
		},
	})
}

// Schema builds the executable schema with r's resolvers
func (r *Resolver) Schema() (graphql.Schema, error) {
	userType := newUserType()
	linkType := newLinkType(userType)
	userType.AddFieldConfig("links", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(linkType)),
		Resolve: userField(func(u *models.User) interface{} {
			if u.Links == nil {
				return nil
			}
			return u.Links
		}),
	})
	userType.AddFieldConfig("votes", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(linkType)),
		Resolve: userField(func(u *models.User) interface{} {
			if u.Votes == nil {
				return nil
			}
			return u.Votes
		}),
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"feed": &graphql.Field{
				Type: graphql.NewNonNull(newFeedType(linkType)),
				Args: graphql.FieldConfigArgument{
					"filter":   &graphql.ArgumentConfig{Type: graphql.String},
					"skip":     &graphql.ArgumentConfig{Type: graphql.Int},
					"take":     &graphql.ArgumentConfig{Type: graphql.Int},
					"orderBy":  &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(linkOrderByInput))},
					"includes": &graphql.ArgumentConfig{Type: linkIncludesInput},
				},
				Resolve: r.Feed,
			},
			"link": &graphql.Field{
				Type: linkType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"includes": &graphql.ArgumentConfig{Type: linkIncludesInput},
				},
				Resolve: r.Link,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"post": &graphql.Field{
				Type: graphql.NewNonNull(linkType),
				Args: graphql.FieldConfigArgument{
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"url":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Post,
			},
			"patch": &graphql.Field{
				Type: linkType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"url":         &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.Patch,
			},
			"delete": &graphql.Field{
				Type: linkType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.Delete,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

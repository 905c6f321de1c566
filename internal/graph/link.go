package graph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"github.com/anonto42/linkfeed/backend/internal/models"
	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// linkOrderFields is the order in which the keys of one LinkOrderByInput are applied
var linkOrderFields = []string{"description", "url", "createdAt"}

// includesFor picks the relations to load for a Link returning field: the
// explicit includes argument if there is one, otherwise whatever relations the
// selection set asks for.
func includesFor(p graphql.ResolveParams, path ...string) includes.Includes {
	if flags, ok := p.Args["includes"].(map[string]interface{}); ok {
		return includes.FromFlags(flags)
	}
	return includes.FromFields(p.Info.FieldASTs, p.Info.Fragments, path...)
}

func parseID(v interface{}) (uint, error) {
	var s string
	switch id := v.(type) {
	case string:
		s = id
	case int:
		s = strconv.Itoa(id)
	default:
		return 0, fmt.Errorf("invalid id %v", v)
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

// nonNegative returns the named Int argument, nil when it was not given
func nonNegative(args map[string]interface{}, name string) (*int, error) {
	n, ok := args[name].(int)
	if !ok {
		return nil, nil
	}
	if n < 0 {
		return nil, fmt.Errorf("%s must not be negative", name)
	}
	return &n, nil
}

func linkOrders(arg interface{}) []repositories.LinkOrder {
	list, _ := arg.([]interface{})
	var orders []repositories.LinkOrder
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, field := range linkOrderFields {
			if dir, ok := m[field].(string); ok {
				orders = append(orders, repositories.LinkOrder{Field: field, Desc: dir == "desc"})
			}
		}
	}
	return orders
}

// Feed resolves Query.feed
func (r *Resolver) Feed(p graphql.ResolveParams) (interface{}, error) {
	gc, err := FromContext(p.Context)
	if err != nil {
		return nil, err
	}

	q := repositories.LinkQuery{
		OrderBy:  linkOrders(p.Args["orderBy"]),
		Includes: includesFor(p, "links"),
	}
	q.Filter, _ = p.Args["filter"].(string)
	if q.Skip, err = nonNegative(p.Args, "skip"); err != nil {
		return nil, err
	}
	if q.Take, err = nonNegative(p.Args, "take"); err != nil {
		return nil, err
	}
	r.log.Debug("feed", zap.String("filter", q.Filter), zap.Strings("includes", q.Includes.Paths()))

	repo := repositories.NewGormLinkRepository(gc.DB)
	links, err := repo.FindMany(p.Context, q)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []models.Link{}
	}
	count, err := repo.Count(p.Context, q.Filter)
	if err != nil {
		return nil, err
	}
	args, err := json.Marshal(p.Args)
	if err != nil {
		return nil, err
	}
	return &feed{Links: links, Count: count, ID: "main-feed:" + string(args)}, nil
}

// Link resolves Query.link; an unknown id gives null
func (r *Resolver) Link(p graphql.ResolveParams) (interface{}, error) {
	gc, err := FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}

	link, err := repositories.NewGormLinkRepository(gc.DB).FindByID(p.Context, id, includesFor(p))
	if err != nil || link == nil {
		return nil, err
	}
	return link, nil
}

// Post resolves Mutation.post: it creates a link posted by the caller
func (r *Resolver) Post(p graphql.ResolveParams) (interface{}, error) {
	gc, err := FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	if gc.UserID == nil {
		return nil, ErrNotAuthenticated
	}

	req := models.PostLinkRequest{}
	req.Description, _ = p.Args["description"].(string)
	req.URL, _ = p.Args["url"].(string)
	if err := r.validate.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}

	// connect to an existing user only
	if _, err := repositories.NewGormUserRepository(gc.DB).FindByID(p.Context, *gc.UserID, nil); err != nil {
		return nil, fmt.Errorf("user %d: %w", *gc.UserID, err)
	}

	link := &models.Link{
		Description: req.Description,
		URL:         req.URL,
		PostedByID:  gc.UserID,
	}
	if err := repositories.NewGormLinkRepository(gc.DB).Create(p.Context, link, includesFor(p)); err != nil {
		return nil, err
	}
	r.record(p.Context, link.ID, gc.UserID, models.LinkPosted)
	return link, nil
}

// Patch resolves Mutation.patch: empty or missing arguments leave the field unchanged
func (r *Resolver) Patch(p graphql.ResolveParams) (interface{}, error) {
	gc, err := FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}

	req := models.PatchLinkRequest{}
	req.Description, _ = p.Args["description"].(string)
	req.URL, _ = p.Args["url"].(string)
	if err := r.validate.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}

	var patch repositories.LinkPatch
	if req.Description != "" {
		patch.Description = &req.Description
	}
	if req.URL != "" {
		patch.URL = &req.URL
	}

	link, err := repositories.NewGormLinkRepository(gc.DB).Update(p.Context, id, patch, includesFor(p))
	if err != nil {
		return nil, err
	}
	r.record(p.Context, link.ID, gc.UserID, models.LinkPatched)
	return link, nil
}

// Delete resolves Mutation.delete and returns the deleted link
func (r *Resolver) Delete(p graphql.ResolveParams) (interface{}, error) {
	gc, err := FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}

	link, err := repositories.NewGormLinkRepository(gc.DB).Delete(p.Context, id, includesFor(p))
	if err != nil {
		return nil, err
	}
	r.record(p.Context, link.ID, gc.UserID, models.LinkDeleted)
	return link, nil
}

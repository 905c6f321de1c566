package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"github.com/anonto42/linkfeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkOrder sorts the feed by one field of a link
type LinkOrder struct {
	Field string // description, url or createdAt
	Desc  bool
}

// LinkQuery describes a page of the feed
type LinkQuery struct {
	Filter   string // matched against description and url
	Skip     *int
	Take     *int
	OrderBy  []LinkOrder
	Includes includes.Includes
}

// LinkPatch holds the fields to change on a link; nil fields are left alone
type LinkPatch struct {
	Description *string
	URL         *string
}

// Empty reports whether the patch changes nothing
func (p LinkPatch) Empty() bool {
	return p.Description == nil && p.URL == nil
}

// LinkRepository defines the interface for link data operations
type LinkRepository interface {
	FindMany(ctx context.Context, q LinkQuery) ([]models.Link, error)
	Count(ctx context.Context, filter string) (int64, error)
	FindByID(ctx context.Context, id uint, inc includes.Includes) (*models.Link, error)
	Create(ctx context.Context, link *models.Link, inc includes.Includes) error
	Update(ctx context.Context, id uint, patch LinkPatch, inc includes.Includes) (*models.Link, error)
	Delete(ctx context.Context, id uint, inc includes.Includes) (*models.Link, error)
}

var linkOrderColumns = map[string]string{
	"description": "description",
	"url":         "url",
	"createdAt":   "created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormLinkRepository implements LinkRepository with gorm
type GormLinkRepository struct {
	db *gorm.DB
}

// NewGormLinkRepository creates a new GormLinkRepository
func NewGormLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// filtered restricts db to links whose description or url contains filter
func filtered(db *gorm.DB, filter string) *gorm.DB {
	if filter == "" {
		return db
	}
	pattern := "%" + likeEscaper.Replace(filter) + "%"
	return db.Where(`description LIKE ? ESCAPE '\' OR url LIKE ? ESCAPE '\'`, pattern, pattern)
}

// FindMany retrieves a page of links
func (r *GormLinkRepository) FindMany(ctx context.Context, q LinkQuery) ([]models.Link, error) {
	db := filtered(r.db.WithContext(ctx).Model(&models.Link{}), q.Filter)

	for _, o := range q.OrderBy {
		col, ok := linkOrderColumns[o.Field]
		if !ok {
			return nil, fmt.Errorf("cannot order links by %q", o.Field)
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
	}
	if len(q.OrderBy) == 0 {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	if q.Skip != nil {
		db = db.Offset(*q.Skip)
	}
	if q.Take != nil {
		db = db.Limit(*q.Take)
	}

	var links []models.Link
	if err := preload(db, linkModel, q.Includes).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Count returns the number of links matching filter, ignoring any pagination
func (r *GormLinkRepository) Count(ctx context.Context, filter string) (int64, error) {
	var count int64
	if err := filtered(r.db.WithContext(ctx).Model(&models.Link{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID retrieves a link by ID. A missing link is not an error: (nil, nil) is returned.
func (r *GormLinkRepository) FindByID(ctx context.Context, id uint, inc includes.Includes) (*models.Link, error) {
	var link models.Link
	err := preload(r.db.WithContext(ctx), linkModel, inc).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create inserts a link and loads the requested relations onto it
func (r *GormLinkRepository) Create(ctx context.Context, link *models.Link, inc includes.Includes) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(link).Error; err != nil {
		return err
	}
	if len(inc) == 0 {
		return nil
	}
	return preload(db, linkModel, inc).First(link, link.ID).Error
}

// Update applies a patch and returns the updated link. gorm.ErrRecordNotFound is returned for an unknown ID.
func (r *GormLinkRepository) Update(ctx context.Context, id uint, patch LinkPatch, inc includes.Includes) (*models.Link, error) {
	var updated models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link models.Link
		if err := tx.First(&link, id).Error; err != nil {
			return err
		}
		if !patch.Empty() {
			updates := map[string]interface{}{}
			if patch.Description != nil {
				updates["description"] = *patch.Description
			}
			if patch.URL != nil {
				updates["url"] = *patch.URL
			}
			if err := tx.Model(&link).Updates(updates).Error; err != nil {
				return err
			}
		}
		return preload(tx, linkModel, inc).First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a link, with its votes, and returns it as it was before deletion.
// gorm.ErrRecordNotFound is returned for an unknown ID.
func (r *GormLinkRepository) Delete(ctx context.Context, id uint, inc includes.Includes) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := preload(tx, linkModel, inc).First(&link, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Link{ID: link.ID}).Association("Voters").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Link{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

package repositories

import (
	"context"

	"github.com/anonto42/linkfeed/backend/internal/includes"
	"github.com/anonto42/linkfeed/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint, inc includes.Includes) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// GormUserRepository implements UserRepository with gorm
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID retrieves a user by ID with the requested relations
func (r *GormUserRepository) FindByID(ctx context.Context, id uint, inc includes.Includes) (*models.User, error) {
	var user models.User
	if err := preload(r.db.WithContext(ctx), userModel, inc).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByFirebaseUID retrieves a user by Firebase UID
func (r *GormUserRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

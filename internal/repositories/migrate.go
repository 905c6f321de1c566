package repositories

import (
	"github.com/anonto42/linkfeed/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every model, including the votes join table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Link{})
}

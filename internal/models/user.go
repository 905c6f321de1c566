package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account that posts and votes on links
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	// Password is a bcrypt hash.
	Password string `json:"-"`
	// FirebaseUID is set for accounts that sign in through Firebase.
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	Links []Link `json:"links,omitempty" gorm:"foreignKey:PostedByID"`
	Votes []Link `json:"votes,omitempty" gorm:"many2many:votes;"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// JwtCustomClaims are the claims carried by a bearer token
type JwtCustomClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

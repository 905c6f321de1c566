package models

import "time"

// Link is a URL posted to the feed
type Link struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	Description string    `json:"description" gorm:"not null"`
	URL         string    `json:"url" gorm:"not null"`
	PostedByID  *uint     `json:"-" gorm:"index"`
	PostedBy    *User     `json:"postedBy,omitempty"`
	Voters      []User    `json:"voters,omitempty" gorm:"many2many:votes;"`
}

// PostLinkRequest holds the arguments of the post mutation. Any text is
// accepted as a URL, schemeless ones like www.example.com included.
type PostLinkRequest struct {
	Description string `validate:"max=1024"`
	URL         string `validate:"max=2048"`
}

// PatchLinkRequest holds the arguments of the patch mutation; empty fields are left unchanged
type PatchLinkRequest struct {
	Description string `validate:"max=1024"`
	URL         string `validate:"max=2048"`
}

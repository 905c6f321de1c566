package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LinkPosted  = "post"
	LinkPatched = "patch"
	LinkDeleted = "delete"
)

// LinkEvent is an audit record of a mutation on a link, stored in MongoDB
type LinkEvent struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LinkID uint               `json:"link_id" bson:"link_id"`
	UserID *uint              `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Action string             `json:"action" bson:"action"`
	At     time.Time          `json:"at" bson:"at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Admin accounts are seeded at startup; there is no self-registration endpoint.
type Admin struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string        `bson:"username" json:"username"`
	Password  string        `bson:"password" json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

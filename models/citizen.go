package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "pending"
	StatusResolved ComplaintStatus = "resolved"
	StatusRejected ComplaintStatus = "rejected"
)

// Valid reports whether s is one of the three accepted statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Complaint is an embedded sub-document of Citizen. It has no independent
// lifecycle: repository operations always address it by (citizenID, complaintID).
type Complaint struct {
	ID          bson.ObjectID   `bson:"_id" json:"_id"`
	Location    string          `bson:"location" json:"location"`
	Category    string          `bson:"category" json:"category"`
	Description string          `bson:"description" json:"description"`
	Status      ComplaintStatus `bson:"status" json:"status"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

type CitizenImage struct {
	URL string `bson:"url" json:"url"`
}

type Citizen struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Username    string         `bson:"username" json:"username"`
	Password    string         `bson:"password" json:"-"` // bcrypt hash, never exposed
	Email       string         `bson:"email" json:"email"`
	PhoneNumber int64          `bson:"phoneNumber" json:"phoneNumber"`
	Images      []CitizenImage `bson:"images" json:"images"`
	Complaints  []Complaint    `bson:"complaints" json:"complaints"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FindComplaint returns the embedded complaint with the given id, or nil.
func (c *Citizen) FindComplaint(id bson.ObjectID) *Complaint {
	for i := range c.Complaints {
		if c.Complaints[i].ID == id {
			return &c.Complaints[i]
		}
	}
	return nil
}

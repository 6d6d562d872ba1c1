package domain

import (
	"errors"
	"time"
)

var ErrResourceNotFound = errors.New("resource not found")
var ErrForbidden = errors.New("access forbidden")

// Resource is a bookmark-like record owned by exactly one user. OwnerID is
// assigned at creation from the caller's identity and never changes.
type Resource struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	URL       string    `json:"url" bson:"url"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// internal/domain/entity/user.go
package entity

import (
	"time"
)

// User is a board operator account. Token issuance is handled elsewhere;
// this service only stores accounts and their password hashes.
type User struct {
	ID           string    `bson:"_id,omitempty"`
	Email        string    `bson:"email"` // unique index
	DisplayName  string    `bson:"displayName"`
	PasswordHash string    `bson:"passwordHash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile document kept for display purposes. Authentication
// lives with the external auth service; the ID here matches the subject of
// the tokens it issues.
type User struct {
	ID         uuid.UUID `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name" validate:"required"`
	Email      string    `bson:"email" json:"email" validate:"required,email"`
	Role       string    `bson:"role" json:"role"`
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	AvatarURL  string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatar_url"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdentityRoleStudent = "STUDENT"
	IdentityRoleAdmin   = "ADMIN"
)

// IdentityUser is the profile returned by the external campus identity
// service for a bearer token.
type IdentityUser struct {
	ID              uuid.UUID  `json:"id,omitempty"`
	Email           string     `json:"email,omitempty"`
	Username        string     `json:"username,omitempty"`
	FullName        string     `json:"full_name,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	GlobalRole      string     `json:"global_role,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	IdentityID  uuid.UUID      `gorm:"uniqueIndex" json:"identity_id"`
	Email       string         `gorm:"uniqueIndex" json:"email"`
	DisplayName string         `json:"display_name"`
	CampusName  *string        `json:"campus_name,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type StudentCreateRequest struct {
	IdentityID  string  `json:"identity_id" validate:"required,uuid"`
	Email       string  `json:"email" validate:"required,email"`
	DisplayName string  `json:"display_name" validate:"required,max=255"`
	CampusName  *string `json:"campus_name,omitempty" validate:"omitempty,max=255"`
}

type StudentUpdateRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	CampusName  *string `json:"campus_name,omitempty" validate:"omitempty,max=255"`
}

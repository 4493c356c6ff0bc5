package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string         `json:"name"`
	Slug      string         `gorm:"uniqueIndex" json:"slug"`
	Icon      *string        `json:"icon,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type CategoryCreateRequest struct {
	Name string  `json:"name" validate:"required,max=100"`
	Slug string  `json:"slug" validate:"required,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=255"`
}

type CategoryUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=255"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string         `json:"name"`
	Slug      string         `gorm:"uniqueIndex" json:"slug"`
	Address   *string        `json:"address,omitempty"`
	Latitude  *float64       `json:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type BusinessCreateRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Slug      string   `json:"slug" validate:"required,max=100"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

type BusinessUpdateRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug      *string  `json:"slug,omitempty" validate:"omitempty,max=100"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DealStatus string

const (
	DealStatusActive    DealStatus = "ACTIVE"
	DealStatusInactive  DealStatus = "INACTIVE"
	DealStatusExpired   DealStatus = "EXPIRED"
	DealStatusExhausted DealStatus = "EXHAUSTED"
)

type RedemptionMethod string

const (
	RedemptionMethodSwipe RedemptionMethod = "SWIPE"
	RedemptionMethodLink  RedemptionMethod = "LINK"
	RedemptionMethodBoth  RedemptionMethod = "BOTH"
)

type Deal struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID         uuid.UUID        `gorm:"index" json:"business_id"`
	CategoryID         *uuid.UUID       `json:"category_id,omitempty"`
	Title              string           `json:"title"`
	Description        *string          `json:"description,omitempty"`
	DiscountPercentage *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"discount_amount,omitempty"`
	IsMultiUse         bool             `json:"is_multi_use"`
	RedemptionMethod   RedemptionMethod `json:"redemption_method"`
	// Redemption coordinate; inherited from the business location when nil.
	// A deal with no coordinate is not geofenced.
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	MaxTicketCount int            `json:"max_ticket_count"`
	IssuedCount    int            `json:"issued_count"`
	ValidFrom      time.Time      `json:"valid_from"`
	ValidUntil     *time.Time     `json:"valid_until,omitempty"`
	Status         DealStatus     `json:"status"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// HasCoordinate reports whether the deal can be geofenced at all.
func (d *Deal) HasCoordinate() bool {
	return d.Latitude != nil && d.Longitude != nil
}

type DealCreateRequest struct {
	BusinessID         string           `json:"business_id" validate:"required,uuid"`
	CategoryID         *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Title              string           `json:"title" validate:"required,max=255"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" validate:"omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty" validate:"omitempty"`
	IsMultiUse         bool             `json:"is_multi_use"`
	RedemptionMethod   RedemptionMethod `json:"redemption_method" validate:"required,oneof=SWIPE LINK BOTH"`
	Latitude           *float64         `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude          *float64         `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	MaxTicketCount     int              `json:"max_ticket_count" validate:"min=1"`
	ValidFrom          time.Time        `json:"valid_from" validate:"required"`
	ValidUntil         *time.Time       `json:"valid_until,omitempty"`
}

type DealUpdateRequest struct {
	CategoryID         *string           `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Title              *string           `json:"title,omitempty" validate:"omitempty,max=255"`
	Description        *string           `json:"description,omitempty" validate:"omitempty,max=1000"`
	DiscountPercentage *decimal.Decimal  `json:"discount_percentage,omitempty" validate:"omitempty"`
	DiscountAmount     *decimal.Decimal  `json:"discount_amount,omitempty" validate:"omitempty"`
	IsMultiUse         *bool             `json:"is_multi_use,omitempty"`
	RedemptionMethod   *RedemptionMethod `json:"redemption_method,omitempty" validate:"omitempty,oneof=SWIPE LINK BOTH"`
	Latitude           *float64          `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude          *float64          `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	MaxTicketCount     *int              `json:"max_ticket_count,omitempty" validate:"omitempty,min=1"`
	ValidFrom          *time.Time        `json:"valid_from,omitempty"`
	ValidUntil         *time.Time        `json:"valid_until,omitempty"`
	Status             *DealStatus       `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE EXPIRED EXHAUSTED"`
}

// DealSummary is the slice of a deal exposed to a scanning business during
// ticket verification.
type DealSummary struct {
	ID                 uuid.UUID        `json:"id"`
	Title              string           `json:"title"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	IsMultiUse         bool             `json:"is_multi_use"`
}

func (d *Deal) Summary() *DealSummary {
	return &DealSummary{
		ID:                 d.ID,
		Title:              d.Title,
		DiscountPercentage: d.DiscountPercentage,
		DiscountAmount:     d.DiscountAmount,
		IsMultiUse:         d.IsMultiUse,
	}
}

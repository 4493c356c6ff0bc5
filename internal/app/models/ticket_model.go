package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code      string    `gorm:"uniqueIndex" json:"code"`
	StudentID uuid.UUID `gorm:"index" json:"student_id"`
	DealID    uuid.UUID `gorm:"index" json:"deal_id"`
	// Consumed transitions false -> true exactly once, never back.
	Consumed             bool           `json:"consumed"`
	ConsumedAt           *time.Time     `json:"consumed_at,omitempty"`
	ConsumedByBusinessID *uuid.UUID     `json:"consumed_by_business_id,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type TicketIssueRequest struct {
	DealID string `json:"deal_id" validate:"required,uuid"`
}

// TicketIssueResponse is what the student client receives after a successful
// swipe-to-redeem.
type TicketIssueResponse struct {
	Code          string       `json:"code"`
	Deal          *DealSummary `json:"deal"`
	IssuedAt      time.Time    `json:"issued_at"`
	MultiUse      bool         `json:"multi_use"`
	CooldownUntil *time.Time   `json:"cooldown_until,omitempty"`
}

// VerificationInputType tags what the scanner operator actually entered.
type VerificationInputType string

const (
	VerificationInputCode  VerificationInputType = "CODE"
	VerificationInputEmail VerificationInputType = "STUDENT_EMAIL"
)

type VerifyPreviewRequest struct {
	Input     string                 `json:"input" validate:"required,max=255"`
	InputType *VerificationInputType `json:"input_type,omitempty" validate:"omitempty,oneof=CODE STUDENT_EMAIL"`
}

type VerifyConfirmRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// VerifyResult is the preview (and confirm) payload shown to scanning staff.
// ConsumedAt is populated only on ALREADY_USED outcomes so staff can see when
// the ticket was first used.
type VerifyResult struct {
	Valid       bool         `json:"valid"`
	Code        string       `json:"code"`
	StudentName string       `json:"student_name"`
	Deal        *DealSummary `json:"deal"`
	ConsumedAt  *time.Time   `json:"consumed_at,omitempty"`
}

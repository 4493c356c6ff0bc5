package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ScannerKeyScope string

const (
	ScannerKeyScopeScan    ScannerKeyScope = "SCAN"
	ScannerKeyScopeConfirm ScannerKeyScope = "CONFIRM"
	ScannerKeyScopeAdmin   ScannerKeyScope = "ADMIN"
)

// ScannerKey is an API key issued to a business for its scanner devices.
type ScannerKey struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID uuid.UUID      `gorm:"index" json:"business_id"`
	KeyName    string         `json:"key_name"`
	APIKey     string         `gorm:"uniqueIndex" json:"api_key"`
	Prefix     string         `json:"prefix"`
	Scopes     pq.StringArray `gorm:"type:text[]" json:"scopes"`
	RateLimit  int            `json:"rate_limit"`
	LastUsedAt *time.Time     `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  *time.Time     `gorm:"index" json:"deleted_at,omitempty"`
}

type ScannerKeyCreateRequest struct {
	BusinessID string            `json:"business_id" validate:"required,uuid"`
	KeyName    string            `json:"key_name" validate:"required,max=100"`
	Scopes     []ScannerKeyScope `json:"scopes" validate:"required,min=1,dive,oneof=SCAN CONFIRM ADMIN"`
	RateLimit  int               `json:"rate_limit" validate:"omitempty,min=1"`
	ExpiresAt  *time.Time        `json:"expires_at,omitempty"`
}

// ScannerKeyUsage records one request made with a scanner key.
type ScannerKeyUsage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScannerKeyID uuid.UUID `gorm:"index" json:"scanner_key_id"`
	Endpoint     string    `json:"endpoint"`
	Method       string    `json:"method"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (k *ScannerKey) HasScope(scope ScannerKeyScope) bool {
	for _, s := range k.Scopes {
		if ScannerKeyScope(s) == scope {
			return true
		}
	}
	return false
}

func (k *ScannerKey) IsExpired() bool {
	if k.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*k.ExpiresAt)
}

func (k *ScannerKey) IsActive() bool {
	return k.DeletedAt == nil && !k.IsExpired()
}

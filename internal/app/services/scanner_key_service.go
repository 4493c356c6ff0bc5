package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"github.com/slocalhq/slocal-core/pkg/scannerkey"
	"gorm.io/gorm"
)

// ScannerKeyService manages the API keys used by business scanner devices.
type ScannerKeyService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewScannerKeyService(db *gorm.DB, validator *infrastructures.Validator) *ScannerKeyService {
	return &ScannerKeyService{
		db:        db,
		validator: validator,
	}
}

func (s *ScannerKeyService) CreateKey(ctx context.Context, req *models.ScannerKeyCreateRequest) (*models.ScannerKey, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	businessUUID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid business ID format")
	}

	for _, scope := range req.Scopes {
		if !scannerkey.ValidateScope(scannerkey.Scope(scope)) {
			return nil, errors.NewBadRequestError("Invalid scope: " + string(scope))
		}
	}

	apiKey, err := scannerkey.Generate(scannerkey.DefaultPrefix)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to generate scanner key")
	}

	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = 100
	}

	scopes := make(pq.StringArray, 0, len(req.Scopes))
	for _, scope := range req.Scopes {
		scopes = append(scopes, string(scope))
	}

	key := &models.ScannerKey{
		BusinessID: businessUUID,
		KeyName:    req.KeyName,
		APIKey:     apiKey,
		Prefix:     scannerkey.DefaultPrefix,
		Scopes:     scopes,
		RateLimit:  rateLimit,
		ExpiresAt:  req.ExpiresAt,
	}

	if err := s.db.WithContext(ctx).Create(key).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create scanner key")
	}

	return key, nil
}

// GetKey looks a key up by its raw value and checks it is still usable.
func (s *ScannerKeyService) GetKey(ctx context.Context, apiKey string) (*models.ScannerKey, error) {
	var key models.ScannerKey
	if err := s.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&key).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewUnauthorizedError("Invalid API key")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get scanner key")
	}

	if !key.IsActive() {
		return nil, errors.NewUnauthorizedError("API key is inactive or expired")
	}

	return &key, nil
}

// LogUsage records one request made with a scanner key.
func (s *ScannerKeyService) LogUsage(ctx context.Context, usage *models.ScannerKeyUsage) error {
	return s.db.WithContext(ctx).Create(usage).Error
}

// ListKeys lists all keys for a business.
func (s *ScannerKeyService) ListKeys(ctx context.Context, businessID uuid.UUID) ([]models.ScannerKey, error) {
	var keys []models.ScannerKey
	if err := s.db.WithContext(ctx).Where("business_id = ?", businessID).Find(&keys).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to list scanner keys")
	}
	return keys, nil
}

// RevokeKey revokes a key for a business.
func (s *ScannerKeyService) RevokeKey(ctx context.Context, id uuid.UUID, businessID uuid.UUID) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&models.ScannerKey{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("deleted_at", now)

	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to revoke scanner key")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Scanner key not found")
	}
	return nil
}

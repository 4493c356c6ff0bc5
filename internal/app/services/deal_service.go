package services

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

type DealService struct {
	db              *gorm.DB
	validator       *infrastructures.Validator
	businessService *BusinessService
}

func NewDealService(db *gorm.DB, validator *infrastructures.Validator, businessService *BusinessService) *DealService {
	return &DealService{
		db:              db,
		validator:       validator,
		businessService: businessService,
	}
}

func (s *DealService) CreateDeal(req *models.DealCreateRequest) (*models.Deal, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	business, err := s.businessService.GetBusiness(req.BusinessID)
	if err != nil {
		return nil, err
	}

	deal := &models.Deal{
		BusinessID:         business.ID,
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		IsMultiUse:         req.IsMultiUse,
		RedemptionMethod:   req.RedemptionMethod,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		MaxTicketCount:     req.MaxTicketCount,
		IssuedCount:        0,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		Status:             models.DealStatusActive,
	}

	// The redemption coordinate defaults to the business location. A deal
	// that ends up with no coordinate is simply not geofenced.
	if deal.Latitude == nil || deal.Longitude == nil {
		deal.Latitude = business.Latitude
		deal.Longitude = business.Longitude
	}

	if req.CategoryID != nil {
		categoryUUID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid category ID format")
		}
		deal.CategoryID = &categoryUUID
	}

	if err := s.db.Create(deal).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create deal")
	}

	return deal, nil
}

func (s *DealService) GetDeal(dealId string) (*models.Deal, error) {
	dealUUID, err := uuid.Parse(dealId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid deal ID format")
	}

	var deal models.Deal
	err = s.db.Where("id = ?", dealUUID).First(&deal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Deal not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get deal")
	}

	return &deal, nil
}

func (s *DealService) GetDeals(pagination *models.PaginationRequest, status *models.DealStatus, businessId *string) (*models.Pagination[[]models.Deal], error) {
	// Lazy expiry sweep so listings never show a stale ACTIVE status.
	if err := s.UpdateExpiredDeals(); err != nil {
		return nil, err
	}

	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	countQuery := s.db.Model(&models.Deal{})
	if status != nil {
		countQuery = countQuery.Where("status = ?", *status)
	}
	if businessId != nil {
		countQuery = countQuery.Where("business_id = ?", *businessId)
	}

	var totalItems int64
	if err := countQuery.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count deals")
	}

	var deals []models.Deal
	query := s.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if businessId != nil {
		query = query.Where("business_id = ?", *businessId)
	}
	query = query.Limit(pagination.Limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&deals).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get deals")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Deal]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      deals,
	}, nil
}

func (s *DealService) UpdateDeal(dealId string, req *models.DealUpdateRequest) (*models.Deal, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	deal, err := s.GetDeal(dealId)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryUUID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid category ID format")
		}
		deal.CategoryID = &categoryUUID
	}
	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Description != nil {
		deal.Description = req.Description
	}
	if req.DiscountPercentage != nil {
		deal.DiscountPercentage = req.DiscountPercentage
	}
	if req.DiscountAmount != nil {
		deal.DiscountAmount = req.DiscountAmount
	}
	if req.IsMultiUse != nil {
		deal.IsMultiUse = *req.IsMultiUse
	}
	if req.RedemptionMethod != nil {
		deal.RedemptionMethod = *req.RedemptionMethod
	}
	if req.Latitude != nil {
		deal.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		deal.Longitude = req.Longitude
	}
	if req.MaxTicketCount != nil {
		deal.MaxTicketCount = *req.MaxTicketCount
	}
	if req.ValidFrom != nil {
		deal.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		deal.ValidUntil = req.ValidUntil
	}
	if req.Status != nil {
		deal.Status = *req.Status
	}

	if err := s.db.Save(deal).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update deal")
	}

	return deal, nil
}

func (s *DealService) DeleteDeal(dealId string) error {
	deal, err := s.GetDeal(dealId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(deal).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete deal")
	}

	return nil
}

// ValidateDeal checks that a deal can currently issue tickets. Inventory is
// re-checked under lock at issuance time; this is the cheap pre-check.
func (s *DealService) ValidateDeal(dealId string) (*models.Deal, error) {
	deal, err := s.GetDeal(dealId)
	if err != nil {
		return nil, err
	}

	if deal.Status != models.DealStatusActive {
		return nil, errors.NewTypedError(http.StatusBadRequest, errors.CodeDealInactive, "Deal is not active")
	}

	now := time.Now()
	if now.Before(deal.ValidFrom) {
		return nil, errors.NewTypedError(http.StatusBadRequest, errors.CodeDealInactive, "Deal is not yet valid")
	}
	if deal.ValidUntil != nil && now.After(*deal.ValidUntil) {
		return nil, errors.NewTypedError(http.StatusBadRequest, errors.CodeDealInactive, "Deal has expired")
	}

	if deal.IssuedCount >= deal.MaxTicketCount {
		return nil, errors.NewConflictError(errors.CodeOutOfInventory, "Deal is out of inventory")
	}

	return deal, nil
}

// UpdateExpiredDeals flips deals past their validity window to EXPIRED.
func (s *DealService) UpdateExpiredDeals() error {
	now := time.Now()

	err := s.db.Model(&models.Deal{}).
		Where("status = ? AND valid_until < ?", models.DealStatusActive, now).
		Update("status", models.DealStatusExpired).Error

	if err != nil {
		return errors.NewInternalServerError(err, "Failed to update expired deals")
	}

	return nil
}

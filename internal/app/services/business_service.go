package services

import (
	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

type BusinessService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewBusinessService(db *gorm.DB, validator *infrastructures.Validator) *BusinessService {
	return &BusinessService{
		db:        db,
		validator: validator,
	}
}

func (s *BusinessService) CreateBusiness(req *models.BusinessCreateRequest) (*models.Business, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Check if slug already exists
	var existingBusiness models.Business
	err := s.db.Where("slug = ?", req.Slug).First(&existingBusiness).Error
	if err == nil {
		return nil, errors.NewBadRequestError("Business slug already exists")
	}

	business := &models.Business{
		Name:      req.Name,
		Slug:      req.Slug,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	}

	if err := s.db.Create(business).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create business")
	}

	return business, nil
}

func (s *BusinessService) GetBusiness(businessId string) (*models.Business, error) {
	businessUUID, err := uuid.Parse(businessId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid business ID format")
	}

	var business models.Business
	err = s.db.Where("id = ?", businessUUID).First(&business).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Business not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get business")
	}

	return &business, nil
}

func (s *BusinessService) GetBusinessBySlug(slug string) (*models.Business, error) {
	var business models.Business
	err := s.db.Where("slug = ?", slug).First(&business).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Business not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get business")
	}

	return &business, nil
}

func (s *BusinessService) GetBusinesses(pagination *models.PaginationRequest) (*models.Pagination[[]models.Business], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.Business{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count businesses")
	}

	var businesses []models.Business
	query := s.db.Order("created_at DESC").Limit(pagination.Limit)
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&businesses).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get businesses")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Business]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      businesses,
	}, nil
}

func (s *BusinessService) UpdateBusiness(businessId string, req *models.BusinessUpdateRequest) (*models.Business, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	business, err := s.GetBusiness(businessId)
	if err != nil {
		return nil, err
	}

	// Check if new slug already exists (if slug is being updated)
	if req.Slug != nil && *req.Slug != business.Slug {
		var existingBusiness models.Business
		err := s.db.Where("slug = ? AND id != ?", *req.Slug, business.ID).First(&existingBusiness).Error
		if err == nil {
			return nil, errors.NewBadRequestError("Business slug already exists")
		}
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Slug != nil {
		business.Slug = *req.Slug
	}
	if req.Address != nil {
		business.Address = req.Address
	}
	if req.Latitude != nil {
		business.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		business.Longitude = req.Longitude
	}
	if req.IsActive != nil {
		business.IsActive = *req.IsActive
	}

	if err := s.db.Save(business).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update business")
	}

	return business, nil
}

func (s *BusinessService) DeleteBusiness(businessId string) error {
	business, err := s.GetBusiness(businessId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(business).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete business")
	}

	return nil
}

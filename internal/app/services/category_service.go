package services

import (
	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

type CategoryService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewCategoryService(db *gorm.DB, validator *infrastructures.Validator) *CategoryService {
	return &CategoryService{
		db:        db,
		validator: validator,
	}
}

func (s *CategoryService) CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existingCategory models.Category
	err := s.db.Where("slug = ?", req.Slug).First(&existingCategory).Error
	if err == nil {
		return nil, errors.NewBadRequestError("Category slug already exists")
	}

	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
		Icon: req.Icon,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create category")
	}

	return category, nil
}

func (s *CategoryService) GetCategory(categoryId string) (*models.Category, error) {
	categoryUUID, err := uuid.Parse(categoryId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid category ID format")
	}

	var category models.Category
	err = s.db.Where("id = ?", categoryUUID).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Category not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get category")
	}

	return &category, nil
}

func (s *CategoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get categories")
	}

	return categories, nil
}

func (s *CategoryService) UpdateCategory(categoryId string, req *models.CategoryUpdateRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(categoryId)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		var existingCategory models.Category
		err := s.db.Where("slug = ? AND id != ?", *req.Slug, category.ID).First(&existingCategory).Error
		if err == nil {
			return nil, errors.NewBadRequestError("Category slug already exists")
		}
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update category")
	}

	return category, nil
}

func (s *CategoryService) DeleteCategory(categoryId string) error {
	category, err := s.GetCategory(categoryId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete category")
	}

	return nil
}

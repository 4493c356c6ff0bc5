package services

import (
	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

type StudentService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewStudentService(db *gorm.DB, validator *infrastructures.Validator) *StudentService {
	return &StudentService{
		db:        db,
		validator: validator,
	}
}

func (s *StudentService) CreateStudent(req *models.StudentCreateRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	identityUUID, err := uuid.Parse(req.IdentityID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid identity ID format")
	}

	// Check if student already registered
	var existingStudent models.Student
	err = s.db.Where("identity_id = ? OR email = ?", identityUUID, req.Email).First(&existingStudent).Error
	if err == nil {
		return nil, errors.NewBadRequestError("Student already registered")
	}

	student := &models.Student{
		IdentityID:  identityUUID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		CampusName:  req.CampusName,
	}

	if err := s.db.Create(student).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create student")
	}

	return student, nil
}

func (s *StudentService) GetStudent(studentId string) (*models.Student, error) {
	studentUUID, err := uuid.Parse(studentId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid student ID format")
	}

	var student models.Student
	err = s.db.Where("id = ?", studentUUID).First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Student not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get student")
	}

	return &student, nil
}

func (s *StudentService) GetStudentByIdentity(identityId string) (*models.Student, error) {
	identityUUID, err := uuid.Parse(identityId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid identity ID format")
	}

	var student models.Student
	err = s.db.Where("identity_id = ?", identityUUID).First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Student not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get student")
	}

	return &student, nil
}

func (s *StudentService) GetStudentByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := s.db.Where("email = ?", email).First(&student).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Student not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get student")
	}

	return &student, nil
}

func (s *StudentService) UpdateStudent(studentId string, req *models.StudentUpdateRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := s.GetStudent(studentId)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.DisplayName != nil {
		student.DisplayName = *req.DisplayName
	}
	if req.CampusName != nil {
		student.CampusName = req.CampusName
	}

	if err := s.db.Save(student).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update student")
	}

	return student, nil
}

func (s *StudentService) DeleteStudent(studentId string) error {
	student, err := s.GetStudent(studentId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(student).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete student")
	}

	return nil
}

package services

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

// VerificationService implements the business-side scan flow: a side-effect
// free preview followed by an explicit confirm that consumes the ticket
// atomically.
type VerificationService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	dealService    *DealService
	studentService *StudentService
}

func NewVerificationService(db *gorm.DB, validator *infrastructures.Validator, dealService *DealService, studentService *StudentService) *VerificationService {
	return &VerificationService{
		db:             db,
		validator:      validator,
		dealService:    dealService,
		studentService: studentService,
	}
}

// Preview resolves a scanned or typed input to at most one ticket and
// returns what the staff member needs to see. It never mutates state, so
// scanning is always safe to repeat.
func (s *VerificationService) Preview(businessID string, req *models.VerifyPreviewRequest) (*models.VerifyResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	businessUUID, err := uuid.Parse(businessID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid business ID format")
	}

	// Prefer the explicit tag; fall back to the heuristic only for untagged
	// legacy scanners.
	inputType := pkg.DetectInputType(req.Input)
	if req.InputType != nil {
		inputType = *req.InputType
	}

	var ticket *models.Ticket
	switch inputType {
	case models.VerificationInputEmail:
		ticket, err = s.findTicketByStudentEmail(businessUUID, req.Input)
	default:
		ticket, err = s.findTicketByCode(req.Input)
	}
	if err != nil {
		return nil, err
	}

	return s.resolve(businessUUID, ticket)
}

// Confirm consumes a previewed ticket. The consumed flag flips under a row
// lock so two concurrent confirms of the same code cannot both succeed: the
// loser observes ALREADY_USED with the winner's timestamp.
func (s *VerificationService) Confirm(businessID string, req *models.VerifyConfirmRequest) (*models.VerifyResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	businessUUID, err := uuid.Parse(businessID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid business ID format")
	}

	code := pkg.NormalizeTicketCode(req.Code)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var ticket models.Ticket
	err = lockForUpdate(tx).Where("code = ?", code).First(&ticket).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewTypedError(http.StatusNotFound, errors.CodeInvalidCode, "Ticket not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up ticket")
	}

	deal, err := s.dealService.GetDeal(ticket.DealID.String())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if deal.BusinessID != businessUUID {
		tx.Rollback()
		// Do not leak which business the ticket belongs to.
		return nil, errors.NewTypedError(http.StatusForbidden, errors.CodeWrongBusiness, "Ticket is not valid at this business")
	}

	if ticket.Consumed {
		tx.Rollback()
		return nil, s.alreadyUsedError(ticket.ConsumedAt)
	}

	now := time.Now()
	ticket.Consumed = true
	ticket.ConsumedAt = &now
	ticket.ConsumedByBusinessID = &businessUUID

	if err := tx.Save(&ticket).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to consume ticket")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit ticket consumption")
	}

	student, err := s.studentService.GetStudent(ticket.StudentID.String())
	if err != nil {
		return nil, err
	}

	return &models.VerifyResult{
		Valid:       true,
		Code:        ticket.Code,
		StudentName: student.DisplayName,
		Deal:        deal.Summary(),
		ConsumedAt:  ticket.ConsumedAt,
	}, nil
}

func (s *VerificationService) findTicketByCode(input string) (*models.Ticket, error) {
	code := pkg.NormalizeTicketCode(input)

	var ticket models.Ticket
	err := s.db.Where("code = ?", code).First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewTypedError(http.StatusNotFound, errors.CodeInvalidCode, "Ticket not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up ticket")
	}

	return &ticket, nil
}

// findTicketByStudentEmail resolves the student's most recent unconsumed
// ticket for a deal of the scanning business.
func (s *VerificationService) findTicketByStudentEmail(businessID uuid.UUID, email string) (*models.Ticket, error) {
	student, err := s.studentService.GetStudentByEmail(email)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.StatusCode == http.StatusNotFound {
			return nil, errors.NewTypedError(http.StatusNotFound, errors.CodeInvalidCode, "No matching ticket found")
		}
		return nil, err
	}

	var ticket models.Ticket
	err = s.db.
		Joins("JOIN deals ON deals.id = tickets.deal_id").
		Where("tickets.student_id = ? AND tickets.consumed = false AND deals.business_id = ?", student.ID, businessID).
		Order("tickets.created_at DESC").
		First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewTypedError(http.StatusNotFound, errors.CodeInvalidCode, "No matching ticket found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up ticket")
	}

	return &ticket, nil
}

func (s *VerificationService) resolve(businessID uuid.UUID, ticket *models.Ticket) (*models.VerifyResult, error) {
	deal, err := s.dealService.GetDeal(ticket.DealID.String())
	if err != nil {
		return nil, err
	}

	if deal.BusinessID != businessID {
		return nil, errors.NewTypedError(http.StatusForbidden, errors.CodeWrongBusiness, "Ticket is not valid at this business")
	}

	if ticket.Consumed {
		return nil, s.alreadyUsedError(ticket.ConsumedAt)
	}

	student, err := s.studentService.GetStudent(ticket.StudentID.String())
	if err != nil {
		return nil, err
	}

	return &models.VerifyResult{
		Valid:       true,
		Code:        ticket.Code,
		StudentName: student.DisplayName,
		Deal:        deal.Summary(),
	}, nil
}

// alreadyUsedError carries the original consumption timestamp so staff can
// see when the ticket was first used.
func (s *VerificationService) alreadyUsedError(consumedAt *time.Time) *errors.AppError {
	message := "Ticket already used"
	if consumedAt != nil {
		message = "Ticket already used at " + consumedAt.Format(time.RFC3339)
	}
	return errors.NewConflictError(errors.CodeAlreadyUsed, message)
}

package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/skip2/go-qrcode"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"gorm.io/gorm"
)

// CooldownWindow is the server-side lockout between multi-use redemptions
// for the same (student, deal) pair. The client runs its own presentation
// timer; this one is authoritative.
const CooldownWindow = 5 * time.Minute

type TicketService struct {
	db          *gorm.DB
	redis       *redis.Client
	validator   *infrastructures.Validator
	dealService *DealService
}

func NewTicketService(db *gorm.DB, redis *redis.Client, validator *infrastructures.Validator, dealService *DealService) *TicketService {
	return &TicketService{
		db:          db,
		redis:       redis,
		validator:   validator,
		dealService: dealService,
	}
}

func cooldownKey(studentID, dealID uuid.UUID) string {
	return fmt.Sprintf("slocal:cooldown:%s:%s", studentID, dealID)
}

// IssueTicket mints a ticket for a completed swipe. Single-use deals get at
// most one ticket per student; multi-use deals are throttled by the cooldown
// window. Inventory is re-checked under a row lock so two concurrent
// issuances cannot oversell the last ticket.
func (s *TicketService) IssueTicket(ctx context.Context, studentID string, req *models.TicketIssueRequest) (*models.TicketIssueResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid student ID format")
	}

	deal, err := s.dealService.ValidateDeal(req.DealID)
	if err != nil {
		return nil, err
	}

	if deal.IsMultiUse {
		// Server-authoritative cooldown; the client timer is advisory only.
		ttl, err := s.redis.TTL(ctx, cooldownKey(studentUUID, deal.ID)).Result()
		if err == nil && ttl > 0 {
			until := time.Now().Add(ttl)
			return nil, errors.NewTypedError(
				http.StatusTooManyRequests,
				errors.CodeCooldownActive,
				fmt.Sprintf("Cooldown active, try again at %s", until.Format(time.RFC3339)),
			)
		}
	} else {
		// Single-use: one ticket per (student, deal), ever. This is the cheap
		// pre-check; the race-free one runs under the deal lock below.
		exists, err := s.hasExistingTicket(s.db, studentUUID, deal.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewConflictError(errors.CodeAlreadyRedeemed, "Deal already redeemed by this student")
		}
	}

	code, err := pkg.NewTicketCode()
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to generate ticket code")
	}

	ticket := &models.Ticket{
		Code:      code,
		StudentID: studentUUID,
		DealID:    deal.ID,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Lock the deal row and re-check inventory inside the transaction.
	var lockedDeal models.Deal
	if err := lockForUpdate(tx).Where("id = ?", deal.ID).First(&lockedDeal).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to lock deal")
	}

	if lockedDeal.IssuedCount >= lockedDeal.MaxTicketCount {
		tx.Rollback()
		return nil, errors.NewConflictError(errors.CodeOutOfInventory, "Deal is out of inventory")
	}

	if !lockedDeal.IsMultiUse {
		// Concurrent issuances serialize on the deal lock, so the loser of a
		// race observes the winner's ticket here.
		exists, err := s.hasExistingTicket(tx, studentUUID, deal.ID)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if exists {
			tx.Rollback()
			return nil, errors.NewConflictError(errors.CodeAlreadyRedeemed, "Deal already redeemed by this student")
		}
	}

	if err := tx.Create(ticket).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to create ticket")
	}

	lockedDeal.IssuedCount++
	if lockedDeal.IssuedCount >= lockedDeal.MaxTicketCount {
		lockedDeal.Status = models.DealStatusExhausted
	}

	if err := tx.Save(&lockedDeal).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update deal inventory")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit ticket issuance")
	}

	response := &models.TicketIssueResponse{
		Code:     ticket.Code,
		Deal:     lockedDeal.Summary(),
		IssuedAt: ticket.CreatedAt,
		MultiUse: lockedDeal.IsMultiUse,
	}

	if lockedDeal.IsMultiUse {
		until := time.Now().Add(CooldownWindow)
		response.CooldownUntil = &until
		if err := s.redis.Set(ctx, cooldownKey(studentUUID, deal.ID), ticket.Code, CooldownWindow).Err(); err != nil {
			infrastructures.GetLogger().Warnf("failed to set cooldown key: %v", err)
		}
	}

	return response, nil
}

// hasExistingTicket reports whether the student already holds a ticket for
// the deal. A race-free answer requires holding the deal row lock.
func (s *TicketService) hasExistingTicket(tx *gorm.DB, studentID, dealID uuid.UUID) (bool, error) {
	var ticket models.Ticket
	err := tx.Where("student_id = ? AND deal_id = ?", studentID, dealID).First(&ticket).Error
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, errors.NewInternalServerError(err, "Failed to check existing tickets")
	}
}

func (s *TicketService) GetTicket(ticketId string) (*models.Ticket, error) {
	ticketUUID, err := uuid.Parse(ticketId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid ticket ID format")
	}

	var ticket models.Ticket
	err = s.db.Where("id = ?", ticketUUID).First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Ticket not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get ticket")
	}

	return &ticket, nil
}

func (s *TicketService) GetTicketByCode(code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.Where("code = ?", pkg.NormalizeTicketCode(code)).First(&ticket).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewTypedError(http.StatusNotFound, errors.CodeInvalidCode, "Ticket not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get ticket")
	}

	return &ticket, nil
}

func (s *TicketService) GetTicketsByStudent(studentId string, limit, offset int) ([]models.Ticket, error) {
	studentUUID, err := uuid.Parse(studentId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid student ID format")
	}

	var tickets []models.Ticket
	query := s.db.Where("student_id = ?", studentUUID).Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err = query.Find(&tickets).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get tickets")
	}

	return tickets, nil
}

// TicketQRCode renders the ticket code as a PNG for the scanner. Only the
// owning student may request it.
func (s *TicketService) TicketQRCode(studentId, code string, size int) ([]byte, error) {
	ticket, err := s.GetTicketByCode(code)
	if err != nil {
		return nil, err
	}

	if ticket.StudentID.String() != studentId {
		return nil, errors.NewForbiddenError("Ticket belongs to another student")
	}

	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(ticket.Code, qrcode.Medium, size)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to render QR code")
	}

	return png, nil
}

// Package redemption coordinates one swipe-to-redeem interaction: the
// geofence gate, the drag gesture, the at-most-once issuance call and the
// multi-use cooldown.
package redemption

import (
	"context"
	"time"
)

// OutcomeCode is the typed result of an issuance call.
type OutcomeCode string

const (
	// Terminal for the deal: a single-use deal already has a ticket for
	// this student.
	CodeAlreadyRedeemed OutcomeCode = "ALREADY_REDEEMED"
	// Terminal for the deal: inventory exhausted.
	CodeOutOfInventory OutcomeCode = "OUT_OF_INVENTORY"
	// The server-side cooldown window has not elapsed yet.
	CodeCooldownActive OutcomeCode = "COOLDOWN_ACTIVE"
	// Transient transport failure; the swipe resets and may be retried.
	CodeNetworkError OutcomeCode = "NETWORK_ERROR"
)

// Error is a typed issuance failure.
type Error struct {
	Code    OutcomeCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Terminal reports whether the failure ends the attempt with no retry path.
func (e *Error) Terminal() bool {
	return e.Code == CodeAlreadyRedeemed || e.Code == CodeOutOfInventory
}

// IssueResult is a successful issuance.
type IssueResult struct {
	Code          string
	IssuedAt      time.Time
	MultiUse      bool
	CooldownUntil *time.Time
}

// Issuer is the backend boundary that mints tickets. Implementations must
// return *Error for typed failures; any other error is treated as a network
// error.
type Issuer interface {
	Issue(ctx context.Context, studentID, dealID string) (*IssueResult, error)
}

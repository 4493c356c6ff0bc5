package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds SQL without touching a database. The pgx pool connects
// lazily and automatic ping is off, so no server is needed.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=slocal dbname=slocal",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run session: %v", err)
	}

	return db
}

func TestConsumeLookupLocksTicketRow(t *testing.T) {
	db := newDryRunDB(t)

	var ticket models.Ticket
	stmt := lockForUpdate(db).Where("code = ?", "SL-AB23CD45").First(&ticket).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "tickets") {
		t.Fatalf("expected ticket lookup, got: %s", sql)
	}
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected row lock in generated SQL, got: %s", sql)
	}
}

func TestInventoryLookupLocksDealRow(t *testing.T) {
	db := newDryRunDB(t)

	var deal models.Deal
	stmt := lockForUpdate(db).Where("id = ?", uuid.New()).First(&deal).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "deals") {
		t.Fatalf("expected deal lookup, got: %s", sql)
	}
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("expected row lock in generated SQL, got: %s", sql)
	}
}

func TestExistingTicketCheckScopesStudentAndDeal(t *testing.T) {
	db := newDryRunDB(t)
	s := &TicketService{db: db}

	session := db.Session(&gorm.Session{DryRun: true})
	_, _ = s.hasExistingTicket(session, uuid.New(), uuid.New())

	sql := session.Statement.SQL.String()
	if !strings.Contains(sql, "student_id") || !strings.Contains(sql, "deal_id") {
		t.Fatalf("expected duplicate check scoped to student and deal, got: %s", sql)
	}
}

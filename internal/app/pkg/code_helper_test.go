package pkg

import (
	"strings"
	"testing"

	"github.com/slocalhq/slocal-core/internal/app/models"
)

func TestNewTicketCodeFormat(t *testing.T) {
	code, err := NewTicketCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(code, TicketCodePrefix) {
		t.Fatalf("expected %q prefix, got %q", TicketCodePrefix, code)
	}
	token := strings.TrimPrefix(code, TicketCodePrefix)
	if len(token) != 8 {
		t.Fatalf("expected 8 character token, got %q", token)
	}
	for _, r := range token {
		if !strings.ContainsRune(ticketCodeAlphabet, r) {
			t.Fatalf("token %q contains character %q outside the alphabet", token, r)
		}
	}
	if strings.ContainsAny(token, "01OI") {
		t.Fatalf("token %q contains an ambiguous character", token)
	}
}

func TestNormalizeTicketCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SL-AB23CD45", "SL-AB23CD45"},
		{"sl-ab23cd45", "SL-AB23CD45"},
		{"#SL-AB23CD45", "SL-AB23CD45"},
		{"  #sl-ab23cd45  ", "SL-AB23CD45"},
	}

	for _, tt := range tests {
		if got := NormalizeTicketCode(tt.input); got != tt.want {
			t.Fatalf("NormalizeTicketCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetectInputType(t *testing.T) {
	tests := []struct {
		input string
		want  models.VerificationInputType
	}{
		{"maya@campus.edu", models.VerificationInputEmail},
		{"SL-AB23CD45", models.VerificationInputCode},
		{"sl-ab23cd45", models.VerificationInputCode},
		{"#SL-AB23CD45", models.VerificationInputCode},
		{"AB23CD45", models.VerificationInputCode},
		{"averylongstudentidentifier", models.VerificationInputEmail},
	}

	for _, tt := range tests {
		if got := DetectInputType(tt.input); got != tt.want {
			t.Fatalf("DetectInputType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

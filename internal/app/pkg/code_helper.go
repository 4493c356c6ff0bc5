package pkg

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/slocalhq/slocal-core/internal/app/models"
)

// TicketCodePrefix is the human-recognizable prefix on every issued code.
const TicketCodePrefix = "SL-"

const ticketCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewTicketCode generates a short human-typeable ticket code like "SL-AB12CD34".
// The alphabet omits 0/O/1/I to keep codes unambiguous when typed from a
// printed or scanned source.
func NewTicketCode() (string, error) {
	token, err := gonanoid.Generate(ticketCodeAlphabet, 8)
	if err != nil {
		return "", err
	}
	return TicketCodePrefix + token, nil
}

// NormalizeTicketCode strips the optional "#" display prefix and uppercases
// whatever the scanner operator typed.
func NormalizeTicketCode(input string) string {
	code := strings.TrimSpace(input)
	code = strings.TrimPrefix(code, "#")
	return strings.ToUpper(code)
}

// DetectInputType classifies a scanner input as a ticket code or a student
// email. Used only when the request does not tag the input explicitly; the
// tagged field is always preferred.
func DetectInputType(input string) models.VerificationInputType {
	trimmed := strings.TrimSpace(input)
	if strings.Contains(trimmed, "@") {
		return models.VerificationInputEmail
	}
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "#") || strings.HasPrefix(upper, TicketCodePrefix) {
		return models.VerificationInputCode
	}
	// Short alphanumeric tokens read like codes; anything else is treated as
	// an identifier lookup.
	if len(trimmed) <= 16 {
		return models.VerificationInputCode
	}
	return models.VerificationInputEmail
}

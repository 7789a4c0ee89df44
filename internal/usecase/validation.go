package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
)

// ValidateIBAN checks an account number using the mod-97 scheme.
// Spaces are tolerated, case is not significant.
func ValidateIBAN(iban string) bool {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if !unicode.IsLetter(rune(iban[0])) || !unicode.IsLetter(rune(iban[1])) {
		return false
	}

	rearranged := iban[4:] + iban[:4]
	var remainder int
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

const dateLayout = "2006-01-02"

// ParseDateRange parses an optional from/to pair of YYYY-MM-DD values.
// From is inclusive, to covers the whole named day. A reversed range is
// rejected with ErrInvalidDateRange.
func ParseDateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromRaw != "" {
		t, err := time.Parse(dateLayout, fromRaw)
		if err != nil {
			return nil, nil, domainErrors.ErrInvalidDateRange
		}
		from = &t
	}
	if toRaw != "" {
		t, err := time.Parse(dateLayout, toRaw)
		if err != nil {
			return nil, nil, domainErrors.ErrInvalidDateRange
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, domainErrors.ErrInvalidDateRange
	}
	return from, to, nil
}

// EncodeCursor packs the keyset position of the last returned image.
func EncodeCursor(createdAt time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%s|%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor unpacks a cursor produced by EncodeCursor.
func DecodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, domainErrors.ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, domainErrors.ErrInvalidCursor
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, uuid.Nil, domainErrors.ErrInvalidCursor
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, domainErrors.ErrInvalidCursor
	}
	return ts, id, nil
}

package service

import (
	"strings"
	"time"

	"staygo/pkg/errors"
)

// CardValidator checks card numbers and expiry dates before a payment
// attempt is recorded. Luhn verification is computed unconditionally but
// only rejects when EnforceLuhn is set, matching the current production
// policy.
type CardValidator struct {
	EnforceLuhn bool

	// now is swappable for tests.
	now func() time.Time
}

func NewCardValidator(enforceLuhn bool) *CardValidator {
	return &CardValidator{
		EnforceLuhn: enforceLuhn,
		now:         time.Now,
	}
}

// ValidateNumber checks the card number structure: spaces stripped, 13-19
// numeric digits, and (when enforced) a passing Luhn checksum.
func (v *CardValidator) ValidateNumber(number string) error {
	cleaned := strings.ReplaceAll(number, " ", "")

	if len(cleaned) < 13 || len(cleaned) > 19 {
		return errors.BadRequest("Card number must be 13-19 digits", nil)
	}

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			return errors.BadRequest("Card number must contain only digits", nil)
		}
	}

	if v.EnforceLuhn && !LuhnValid(cleaned) {
		return errors.BadRequest("Invalid card number", nil)
	}

	return nil
}

// ValidateExpiry checks an MM/YY expiry: month 1-12, year 2000+YY, and the
// (year, month) pair not strictly before the current one.
func (v *CardValidator) ValidateExpiry(expiry string) error {
	month, year, ok := parseExpiry(expiry)
	if !ok {
		return errors.BadRequest("Expiry must be in MM/YY format", nil)
	}

	if month < 1 || month > 12 {
		return errors.BadRequest("Expiry month must be between 01 and 12", nil)
	}

	now := v.now()
	curYear, curMonth := now.Year(), int(now.Month())
	if year < curYear || (year == curYear && month < curMonth) {
		return errors.BadRequest("Card has expired", nil)
	}

	return nil
}

// LastFour returns the final four digits of the cleaned card number.
func LastFour(number string) string {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) < 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}

// LuhnValid computes the Luhn checksum over a digits-only card number.
func LuhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func parseExpiry(expiry string) (month, year int, ok bool) {
	if len(expiry) != 5 || expiry[2] != '/' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if expiry[i] < '0' || expiry[i] > '9' {
			return 0, 0, false
		}
	}
	month = int(expiry[0]-'0')*10 + int(expiry[1]-'0')
	year = 2000 + int(expiry[3]-'0')*10 + int(expiry[4]-'0')
	return month, year, true
}

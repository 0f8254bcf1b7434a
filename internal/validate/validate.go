// Package validate implements the client-side form rules: email shape,
// password length, event category whitelist, and date/time formats.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"eventmanager/internal/common"
)

// MinPasswordLen matches the remote API's minimum password length.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Categories is the event category whitelist accepted by the backend.
var Categories = []string{"academic", "cultural", "sports", "workshop", "seminar", "other"}

// Email checks the address against a simple regex.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	return nil
}

// Password enforces the minimum length rule.
func Password(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLen)
	}
	return nil
}

// Category checks membership in the whitelist.
func Category(category string) error {
	for _, c := range Categories {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown category %q", common.ErrValidation, category)
}

// EventDate checks the ISO YYYY-MM-DD format.
func EventDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	return nil
}

// EventTime checks the HH:MM format.
func EventTime(t string) error {
	if _, err := time.Parse("15:04", t); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", common.ErrValidation)
	}
	return nil
}

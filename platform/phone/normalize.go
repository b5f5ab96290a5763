// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "CZ"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	return format(input, phonenumbers.E164)
}

// NormalizeInternational formats a phone number for display, e.g. "+420 571 120 100".
// If parsing fails, it returns the trimmed input.
func NormalizeInternational(input string) string {
	return format(input, phonenumbers.INTERNATIONAL)
}

func format(input string, numberFormat phonenumbers.PhoneNumberFormat) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, numberFormat)
}

// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// International numbers (optional +, no leading zero) or national
	// format with its leading 0, 7-15 digits either way
	regex := `^(\+?[1-9]\d{6,14}|0\d{6,14})$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateTimeOfDay accepts 24h "HH:MM" strings as used by opening hours
// and booking slots.
func ValidateTimeOfDay(value string) bool {
	return timeOfDayRegex.MatchString(value)
}

var shortCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,32}$`)

// ValidateShortCode accepts vanity short-link codes.
func ValidateShortCode(code string) bool {
	return shortCodeRegex.MatchString(code)
}

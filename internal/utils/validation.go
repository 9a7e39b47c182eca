package utils

import (
	"regexp"
	"strings"
)

var (
	mobileRegex = regexp.MustCompile(`^\+?\d{10,15}$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	dateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidMobile checks that a mobile number is numeric and long enough,
// after stripping common separators.
func ValidMobile(mobile string) bool {
	cleaned := strings.ReplaceAll(mobile, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return mobileRegex.MatchString(cleaned)
}

// ValidEmail checks an email address against a simple format pattern.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidDate checks the YYYY-MM-DD shape without calendar validation;
// ParseScheduleAt rejects impossible dates.
func ValidDate(date string) bool {
	return dateRegex.MatchString(date)
}

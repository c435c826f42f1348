package validate

import (
	"regexp"
	"strings"
)

// emailRE accepts the usual local@domain.tld shape. No deliverability
// checking beyond the format.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like a valid email address.
func Email(s string) bool {
	return emailRE.MatchString(s)
}

// Required reports whether s contains anything besides whitespace.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

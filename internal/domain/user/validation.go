package user

import (
	"regexp"
	"strings"
)

// Deliberately permissive: anything after the '@' is accepted, including a
// dotless domain. Downstream consumers depend on this exact shape.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// Age bounds for any user record that exists in the store.
const (
	MinAge = 0
	MaxAge = 80
)

// ValidateEmail reports whether s is a usable email address. Surrounding
// whitespace is ignored; all-whitespace input is rejected.
func ValidateEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailRegex.MatchString(s)
}

// ValidateAge reports whether n is inside the inclusive [MinAge, MaxAge] range.
func ValidateAge(n int) bool {
	return n >= MinAge && n <= MaxAge
}

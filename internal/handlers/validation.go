package handlers

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPhone accepts exactly 10 digits.
func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validStatus(status string, allowed []string) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}

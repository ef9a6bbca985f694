package validation

import "regexp"

// The local part may hold word characters, hyphens and dots, must not start
// with a dot and must end with a word character. The domain needs at least
// one dot and a top-level label of two or more word characters.
var emailPattern = regexp.MustCompile(`^(?:[\w-][\w.-]*)?\w@\w+(?:\.\w+)?\.\w{2,}$`)

// IsValidEmail reports whether address has the accepted email shape.
func IsValidEmail(address string) bool {
	return emailPattern.MatchString(address)
}

package account

import "regexp"

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)
	secretPattern     = regexp.MustCompile(`^[\x21-\x7E]{8,20}$`)
)

// ValidIdentifier reports whether s is an acceptable user_id:
// 6 to 20 ASCII letters or digits.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// ValidSecret reports whether s is an acceptable password:
// 8 to 20 printable ASCII characters, space excluded.
func ValidSecret(s string) bool {
	return secretPattern.MatchString(s)
}

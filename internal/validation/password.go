package validation

import "strings"

// PasswordSymbols are the only non-alphanumeric characters a password may contain.
const PasswordSymbols = "_!@#$%^&*;:,.<>?`~ "

// PasswordMinLength is the minimum number of characters in a password.
const PasswordMinLength = 8

// IsValidPassword reports whether p satisfies the password policy: at least
// PasswordMinLength characters, at least one ASCII digit, one lowercase and
// one uppercase ASCII letter and one of PasswordSymbols. Any other character
// rejects the password.
func IsValidPassword(p string) bool {
	var length, digits, lower, upper, symbols int

	for _, r := range p {
		length++

		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'a' && r <= 'z':
			lower++
		case r >= 'A' && r <= 'Z':
			upper++
		case strings.ContainsRune(PasswordSymbols, r):
			symbols++
		default:
			return false
		}
	}

	return length >= PasswordMinLength &&
		digits > 0 && lower > 0 && upper > 0 && symbols > 0
}

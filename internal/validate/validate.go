// Package validate holds the credential format rules. Both checks are pure;
// they run before any store access so a rejected signup writes nothing.
package validate

import (
	"regexp"
	"unicode/utf8"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	symbolRe   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Username reports whether s is a valid username: 3-20 characters, starting
// with a letter, the rest letters, digits, underscores, or dots.
func Username(s string) bool {
	if len(s) < 3 || len(s) > 20 {
		return false
	}
	return usernameRe.MatchString(s)
}

// Password reports whether s is an acceptable password: at least 8
// characters containing an uppercase letter, a lowercase letter, a digit,
// and a symbol from the fixed punctuation set.
func Password(s string) bool {
	// Length is counted in characters, not bytes.
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	return upperRe.MatchString(s) &&
		lowerRe.MatchString(s) &&
		digitRe.MatchString(s) &&
		symbolRe.MatchString(s)
}

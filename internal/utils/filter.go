package utils

import (
	"strings"
	"unicode"
)

// QueryKind is what a bare line typed into the CLI asks for
type QueryKind int

const (
	QueryPrefix   QueryKind = iota // letters: list words under the prefix
	QueryDigits                    // keypad digits: resolve and correct
	QueryWildcard                  // contains '?' or '*'
	QueryInvalid
)

// IsSeparator checks if a rune may join the parts of a word
func IsSeparator(r rune) bool {
	return r == '\'' || r == '-' || r == '.'
}

// IsOnlyNumbers checks if a string consists entirely of ASCII digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsWildcardPattern reports whether s uses '?' or '*'
func IsWildcardPattern(s string) bool {
	return strings.ContainsAny(s, "?*")
}

// ContainsSpecialChars checks for runes that are neither letters, digits nor word separators
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// ClassifyQuery decides how the CLI answers a bare line
func ClassifyQuery(s string) QueryKind {
	switch {
	case s == "" || strings.ContainsFunc(s, unicode.IsSpace):
		return QueryInvalid
	case IsOnlyNumbers(s):
		return QueryDigits
	case IsWildcardPattern(s):
		return QueryWildcard
	case ContainsSpecialChars(s):
		return QueryInvalid
	}
	return QueryPrefix
}

// Package keypad holds the 9-key phone keypad layout used to turn words into digit strings and back.
package keypad

// Sentinel is the digit assigned to runes that have no key.
// Real digit input never produces it as a letter key, so encoded words containing it never match exactly.
const Sentinel = '0'

// letters maps each digit key to the letters printed on it. 0 and 1 carry none.
var letters = [10]string{
	"", "", "abc", "def", "ghi", "jkl", "mno", "pqrs", "tuv", "wxyz",
}

// digitOf is indexed by letter - 'a'
var digitOf = [26]byte{
	'2', '2', '2',
	'3', '3', '3',
	'4', '4', '4',
	'5', '5', '5',
	'6', '6', '6',
	'7', '7', '7', '7',
	'8', '8', '8',
	'9', '9', '9', '9',
}

// Digit returns the key a letter sits on, case-insensitively.
// Anything outside a-z/A-Z maps to Sentinel.
func Digit(r rune) byte {
	switch {
	case r >= 'a' && r <= 'z':
		return digitOf[r-'a']
	case r >= 'A' && r <= 'Z':
		return digitOf[r-'A']
	}
	return Sentinel
}

// Encode returns the digit string a user would type for word.
func Encode(word string) string {
	code := make([]byte, 0, len(word))
	for _, r := range word {
		code = append(code, Digit(r))
	}
	return string(code)
}

// Letters returns the lowercase letters on a digit key.
// Digits 0 and 1, and any non-digit byte, return "".
func Letters(d byte) string {
	if d < '0' || d > '9' {
		return ""
	}
	return letters[d-'0']
}

// IsDigits reports whether s is a non-empty string of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

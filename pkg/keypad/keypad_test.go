package keypad

import "testing"

func TestEncode(t *testing.T) {
	testCases := []struct {
		word     string
		expected string
	}{
		{"home", "4663"},
		{"HOME", "4663"},
		{"good", "4663"},
		{"pqrs", "7777"},
		{"wxyz", "9999"},
		{"can't", "22608"},
		{"", ""},
		{"é", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			if got := Encode(tc.word); got != tc.expected {
				t.Errorf("Encode(%q): expected %q, got %q", tc.word, tc.expected, got)
			}
		})
	}
}

func TestLettersRoundTrip(t *testing.T) {
	for d := byte('2'); d <= '9'; d++ {
		for _, r := range Letters(d) {
			if Digit(r) != d {
				t.Errorf("letter %q sits on %q, expected %q", r, Digit(r), d)
			}
		}
	}
	for _, d := range []byte{'0', '1', 'a', '*'} {
		if got := Letters(d); got != "" {
			t.Errorf("Letters(%q): expected none, got %q", d, got)
		}
	}
}

func TestIsDigits(t *testing.T) {
	testCases := []struct {
		in       string
		expected bool
	}{
		{"4663", true},
		{"0", true},
		{"", false},
		{"46a3", false},
		{"46 3", false},
	}
	for _, tc := range testCases {
		if got := IsDigits(tc.in); got != tc.expected {
			t.Errorf("IsDigits(%q): expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

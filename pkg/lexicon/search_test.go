package lexicon

import (
	"reflect"
	"testing"
)

func build(words map[string]int) *Lexicon {
	lex := New()
	for w, c := range words {
		lex.Insert(w, c)
	}
	return lex
}

func TestWildcardSearch(t *testing.T) {
	lex := build(map[string]int{"cat": 1, "car": 1, "cart": 1, "scar": 2, "a": 1})

	testCases := []struct {
		pattern  string
		expected []string
	}{
		{"ca?", []string{"car", "cat"}},
		{"ca*", []string{"car", "cart", "cat"}},
		{"*", []string{"a", "car", "cart", "cat", "scar"}},
		{"*ar*", []string{"car", "cart", "scar"}},
		{"?", []string{"a"}},
		{"c?r?", []string{"cart"}},
		{"cat", []string{"cat"}},
		{"**t", []string{"cart", "cat"}},
		{"dog", []string{}},
		{"ca??t", []string{}},
		{"", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			got := lex.WildcardSearch(tc.pattern)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("WildcardSearch(%q): expected %v, got %v", tc.pattern, tc.expected, got)
			}
		})
	}
}

func TestWildcardSkipsRemovedWords(t *testing.T) {
	lex := build(map[string]int{"cat": 1, "car": 1})
	lex.Remove("cat")
	if got := lex.WildcardSearch("ca?"); !reflect.DeepEqual(got, []string{"car"}) {
		t.Errorf("expected [car], got %v", got)
	}
}

func TestWildcardMatch(t *testing.T) {
	testCases := []struct {
		pattern string
		word    string
		match   bool
	}{
		{"", "", true},
		{"*", "", true},
		{"?", "", false},
		{"a*b", "ab", true},
		{"a*b", "axxb", true},
		{"a*b", "axxc", false},
		{"*a*b*", "xaybz", true},
		{"??", "a", false},
	}
	for _, tc := range testCases {
		if got := wildcardMatch([]rune(tc.pattern), []rune(tc.word)); got != tc.match {
			t.Errorf("wildcardMatch(%q, %q): expected %v, got %v", tc.pattern, tc.word, tc.match, got)
		}
	}
}

func TestPrefixListing(t *testing.T) {
	lex := build(map[string]int{"do": 5, "dog": 2, "dot": 2, "cat": 9})

	testCases := []struct {
		prefix   string
		expected []Entry
	}{
		{"do", []Entry{{"dog", 2}, {"dot", 2}, {"do", 5}}},
		{"dog", []Entry{{"dog", 2}}},
		{"d", []Entry{{"dog", 2}, {"dot", 2}, {"do", 5}}},
		{"", []Entry{{"dog", 2}, {"dot", 2}, {"do", 5}, {"cat", 9}}},
		{"dx", []Entry{}},
		{"dogs", []Entry{}},
	}

	for _, tc := range testCases {
		t.Run(tc.prefix, func(t *testing.T) {
			got := lex.PrefixListing(tc.prefix)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("PrefixListing(%q): expected %v, got %v", tc.prefix, tc.expected, got)
			}
		})
	}
}

func TestAutocorrect(t *testing.T) {
	lex := build(map[string]int{"home": 4, "good": 4, "gone": 9, "hood": 1, "cat": 5})

	testCases := []struct {
		digits   string
		expected []Entry
	}{
		// exact encodings first by weight, then by word
		{"4663", []Entry{{"gone", 9}, {"good", 4}, {"home", 4}, {"hood", 1}}},
		{"4664", []Entry{{"gone", 9}, {"good", 4}, {"home", 4}, {"hood", 1}}},
		{"466", []Entry{{"gone", 9}, {"good", 4}, {"home", 4}, {"hood", 1}}},
		{"228", []Entry{{"cat", 5}}},
		{"22", []Entry{{"cat", 5}}},
		{"999999", []Entry{}},
		{"", []Entry{}},
	}

	for _, tc := range testCases {
		t.Run(tc.digits, func(t *testing.T) {
			got := lex.Autocorrect(tc.digits)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Autocorrect(%q): expected %v, got %v", tc.digits, tc.expected, got)
			}
		})
	}
}

func TestAutocorrectSentinel(t *testing.T) {
	lex := build(map[string]int{"a-b": 3})
	// "a-b" encodes to "202"; one substitution away from "222"
	if got := lex.Autocorrect("222"); !reflect.DeepEqual(got, []Entry{{"a-b", 3}}) {
		t.Errorf("expected a-b at distance 1, got %v", got)
	}
	if got := lex.Autocorrect("2"); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestDigitResolution(t *testing.T) {
	lex := build(map[string]int{"cat": 5, "car": 3})

	testCases := []struct {
		digits   string
		expected []string
		best     string
	}{
		{"22", []string{"2 c", "22 ca"}, "ca"},
		{"228", []string{"2 c", "22 ca", "228 cat"}, "cat"},
		{"227", []string{"2 c", "22 ca", "227 car"}, "car"},
		// no child of "ca" under 9 (wxyz): stop after two steps
		{"229", []string{"2 c", "22 ca"}, "ca"},
		{"2289", []string{"2 c", "22 ca", "228 cat"}, "cat"},
		{"3", []string{}, ""},
		{"1", []string{}, ""},
		{"0228", []string{}, ""},
		{"21", []string{"2 c"}, "c"},
		{"", []string{}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.digits, func(t *testing.T) {
			got := lex.DigitResolution(tc.digits)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("DigitResolution(%q): expected %v, got %v", tc.digits, tc.expected, got)
			}
			if best := lex.BestGuess(tc.digits); best != tc.best {
				t.Errorf("BestGuess(%q): expected %q, got %q", tc.digits, tc.best, best)
			}
		})
	}
}

func TestDigitResolutionRanking(t *testing.T) {
	lex := build(map[string]int{
		"act":  2,
		"bat":  3,
		"cat":  1,
		"cab":  1,
		"ad":   1,
		"be":   1,
		"ball": 4,
	})

	// a=3, b=8, c=2 at length 1; at length 2: ac=2, ad=1, ba=7, be=1, ca=2
	got := lex.DigitResolution("22")
	expected := []string{"2 b", "22 ba"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	// "228" reaches act(2), bat(3) and cat(1)
	got = lex.DigitResolution("228")
	expected = []string{"2 b", "22 ba", "228 bat"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestDigitResolutionTieBreak(t *testing.T) {
	lex := build(map[string]int{"ad": 2, "be": 2, "cf": 2})
	got := lex.DigitResolution("23")
	expected := []string{"2 a", "23 ad"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

// a removed word leaves its path behind; it still resolves, at weight 0
func TestDigitResolutionDeadBranch(t *testing.T) {
	lex := build(map[string]int{"dog": 3})
	lex.Remove("dog")
	got := lex.DigitResolution("364")
	expected := []string{"3 d", "36 do", "364 dog"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestLastLetters(t *testing.T) {
	if got := LastLetters(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := LastLetters([]string{"2 a", "22 ab"}); got != "ab" {
		t.Errorf("expected ab, got %q", got)
	}
}

package lexicon

import "sort"

// WildcardSearch returns every stored word matching pattern, sorted lexicographically.
// '?' matches exactly one rune and '*' matches any run of runes, including none.
//
// Every stored word is visited and matched by backtracking, so the cost grows with vocabulary size times
// the per-word match cost, which is exponential for patterns stacking many '*'.
func (l *Lexicon) WildcardSearch(pattern string) []string {
	p := []rune(pattern)
	results := []string{}
	walk(l.root, nil, func(word string, _ *Node) {
		if wildcardMatch(p, []rune(word)) {
			results = append(results, word)
		}
	})
	sort.Strings(results)
	return results
}

// wildcardMatch reports whether p matches all of s.
func wildcardMatch(p, s []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	if p[0] == '*' {
		// try every length the star can swallow
		for k := 0; k <= len(s); k++ {
			if wildcardMatch(p[1:], s[k:]) {
				return true
			}
		}
		return false
	}
	if len(s) > 0 && (p[0] == '?' || p[0] == s[0]) {
		return wildcardMatch(p[1:], s[1:])
	}
	return false
}

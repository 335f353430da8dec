package lexicon

import (
	"strings"

	"github.com/bastiangx/ninekey/pkg/keypad"
)

// frontier is one reachable node at the current depth and the letters spelling it.
type frontier struct {
	node    *Node
	letters string
}

// DigitResolution computes the best letter sequence for every prefix of the typed digits.
//
// For prefix length i it follows, key by key, only the letters that exist as children along vocabulary
// paths, and picks among the nodes reached at depth i the one with the highest prefix weight, ties going
// to the lexicographically smallest letters. Each entry reads "<digit prefix> <letters>".
//
// Resolution stops at the first length with no reachable node and nothing longer is tried: a prefix with
// no path cannot grow one. Keys 0 and 1 carry no letters and stop it on the spot.
func (l *Lexicon) DigitResolution(digits string) []string {
	steps := []string{}
	level := []frontier{{node: l.root}}

	for i := 0; i < len(digits); i++ {
		keys := keypad.Letters(digits[i])
		next := make([]frontier, 0, len(level))
		for _, f := range level {
			for _, r := range keys {
				if c := f.node.child(r); c != nil {
					next = append(next, frontier{node: c, letters: f.letters + string(r)})
				}
			}
		}
		if len(next) == 0 {
			break
		}

		best := next[0]
		for _, f := range next[1:] {
			if f.node.prefixCount > best.node.prefixCount ||
				(f.node.prefixCount == best.node.prefixCount && f.letters < best.letters) {
				best = f
			}
		}
		steps = append(steps, digits[:i+1]+" "+best.letters)
		level = next
	}
	return steps
}

// BestGuess returns the letters of the last DigitResolution entry, or "" when none resolved.
func (l *Lexicon) BestGuess(digits string) string {
	return LastLetters(l.DigitResolution(digits))
}

// LastLetters extracts the letter sequence of the final resolution step.
func LastLetters(steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	last := steps[len(steps)-1]
	if i := strings.IndexByte(last, ' '); i >= 0 {
		return last[i+1:]
	}
	return last
}

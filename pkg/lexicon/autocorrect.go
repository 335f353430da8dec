package lexicon

import (
	"sort"

	"github.com/bastiangx/ninekey/pkg/fuzzy"
	"github.com/bastiangx/ninekey/pkg/keypad"
)

// MaxCorrectionDistance is the largest edit distance between a word's key sequence and the typed digits
// that still counts as a correction candidate.
const MaxCorrectionDistance = 1

// Autocorrect ranks the words a user may have meant when typing digits on a 9-key pad.
// Each stored word is encoded to its key sequence, and words whose encoding is within
// MaxCorrectionDistance edits of digits are returned, heaviest first, ties by ascending word.
func (l *Lexicon) Autocorrect(digits string) []Entry {
	candidates := []Entry{}
	walk(l.root, nil, func(word string, n *Node) {
		if fuzzy.Within(keypad.Encode(word), digits, MaxCorrectionDistance) {
			candidates = append(candidates, Entry{Word: word, Count: n.wordCount})
		}
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		return candidates[i].Word < candidates[j].Word
	})
	return candidates
}

package lexicon

import "sort"

// PrefixListing returns every stored word starting with prefix, the prefix itself included when stored.
// Results are ordered by ascending weight, ties by ascending word, so the rarest words come first.
// An unknown prefix yields an empty list.
func (l *Lexicon) PrefixListing(prefix string) []Entry {
	results := []Entry{}
	start := l.find(prefix)
	if start == nil {
		return results
	}

	walk(start, []rune(prefix), func(word string, n *Node) {
		results = append(results, Entry{Word: word, Count: n.wordCount})
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count < results[j].Count
		}
		return results[i].Word < results[j].Word
	})
	return results
}

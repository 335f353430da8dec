// Package suggest serves a lexicon to concurrent callers: it validates edits, memoizes queries and
// records operation metrics.
package suggest

import "github.com/bastiangx/ninekey/pkg/lexicon"

// Suggester defines what the IPC server and the CLI drive
type Suggester interface {
	// Add stores a new word, refusing duplicates and non-positive counts
	Add(word string, count int) error

	// Remove deletes a word, reporting whether it was stored
	Remove(word string) bool

	// Update replaces the count of a stored word
	Update(word string, count int) error

	// Lookup returns the count of a word, or 0
	Lookup(word string) int

	// Contains reports whether a word is stored, whatever its count
	Contains(word string) bool

	WildcardSearch(pattern string) []string
	PrefixListing(prefix string) []lexicon.Entry
	Autocorrect(digits string) []lexicon.Entry
	DigitResolution(digits string) []string
	BestGuess(digits string) string

	// Stats returns vocabulary and cache statistics
	Stats() map[string]int
}

var _ Suggester = (*Engine)(nil)

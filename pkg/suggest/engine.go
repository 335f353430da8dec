package suggest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/ninekey/pkg/keypad"
	"github.com/bastiangx/ninekey/pkg/lexicon"
	"github.com/charmbracelet/log"
)

var (
	ErrInvalidWord  = errors.New("invalid word")
	ErrInvalidCount = errors.New("count must be positive")
	ErrWordExists   = errors.New("word already exists")
	ErrWordNotFound = errors.New("word not found")
	ErrInvalidQuery = errors.New("invalid query")
)

// Engine guards a lexicon with a read/write lock.
// Queries share the read lock; edits take the write lock and drop the cached results they affect.
type Engine struct {
	mu    sync.RWMutex
	lex   *lexicon.Lexicon
	cache *QueryCache
}

// NewEngine creates an empty engine caching up to cacheSize query results
func NewEngine(cacheSize int) *Engine {
	return &Engine{
		lex:   lexicon.New(),
		cache: NewQueryCache(cacheSize),
	}
}

// ValidateWord rejects empty words and words containing whitespace
func ValidateWord(word string) error {
	if word == "" || strings.IndexFunc(word, isSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return nil
}

// ValidateDigits rejects anything but a non-empty run of keypad digits
func ValidateDigits(digits string) error {
	if !keypad.IsDigits(digits) {
		return fmt.Errorf("%w: %q is not a digit sequence", ErrInvalidQuery, digits)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// Insert stores word without validation. It is the ingestion path; the loader checks Contains first.
func (e *Engine) Insert(word string, count int) {
	defer observe("insert", time.Now())
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lex.Insert(word, count)
	e.cache.Invalidate(word)
	e.updateGauges()
}

// Contains reports whether word is stored, whatever its count
func (e *Engine) Contains(word string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lex.Contains(word)
}

// Add stores a new word with a positive count
func (e *Engine) Add(word string, count int) error {
	defer observe("add", time.Now())
	if err := ValidateWord(word); err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lex.Contains(word) {
		return fmt.Errorf("%w: %q has count %d", ErrWordExists, word, e.lex.Lookup(word))
	}
	e.lex.Insert(word, count)
	e.cache.Invalidate(word)
	e.updateGauges()
	log.Debugf("Added %q (%d)", word, count)
	return nil
}

// Remove deletes word, reporting whether it was stored
func (e *Engine) Remove(word string) bool {
	defer observe("remove", time.Now())
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.lex.Remove(word) {
		return false
	}
	e.cache.Invalidate(word)
	e.updateGauges()
	log.Debugf("Removed %q", word)
	return true
}

// Update replaces the count of a stored word
func (e *Engine) Update(word string, count int) error {
	defer observe("update", time.Now())
	if count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.lex.Update(word, count) {
		return fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	e.cache.Invalidate(word)
	e.updateGauges()
	log.Debugf("Updated %q to %d", word, count)
	return nil
}

// Lookup returns the count of word, or 0 when it is not stored
func (e *Engine) Lookup(word string) int {
	defer observe("lookup", time.Now())
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lex.Lookup(word)
}

// WildcardSearch returns the stored words matching pattern, '?' standing for one rune and '*' for any run
func (e *Engine) WildcardSearch(pattern string) []string {
	defer observe("wildcard", time.Now())
	if v, ok := e.cache.Get(kindWildcard, pattern); ok {
		return cloneWords(v.([]string))
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	words := e.lex.WildcardSearch(pattern)
	e.cache.Put(kindWildcard, pattern, words)
	return cloneWords(words)
}

// PrefixListing returns the words starting with prefix, lowest count first
func (e *Engine) PrefixListing(prefix string) []lexicon.Entry {
	defer observe("prefix", time.Now())
	if v, ok := e.cache.Get(kindPrefix, prefix); ok {
		return cloneEntries(v.([]lexicon.Entry))
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	entries := e.lex.PrefixListing(prefix)
	e.cache.Put(kindPrefix, prefix, entries)
	return cloneEntries(entries)
}

// Autocorrect returns the words whose key sequence is within one edit of digits, highest count first
func (e *Engine) Autocorrect(digits string) []lexicon.Entry {
	defer observe("correct", time.Now())
	if v, ok := e.cache.Get(kindCorrect, digits); ok {
		return cloneEntries(v.([]lexicon.Entry))
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	entries := e.lex.Autocorrect(digits)
	e.cache.Put(kindCorrect, digits, entries)
	return cloneEntries(entries)
}

// DigitResolution returns the best letter prefix after each typed digit
func (e *Engine) DigitResolution(digits string) []string {
	defer observe("resolve", time.Now())
	return cloneWords(e.resolve(digits))
}

// BestGuess returns the letters of the last resolution step, or "" when nothing resolves
func (e *Engine) BestGuess(digits string) string {
	return lexicon.LastLetters(e.resolve(digits))
}

func (e *Engine) resolve(digits string) []string {
	if v, ok := e.cache.Get(kindDigits, digits); ok {
		return v.([]string)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	steps := e.lex.DigitResolution(digits)
	e.cache.Put(kindDigits, digits, steps)
	return steps
}

// Stats returns vocabulary and cache statistics
func (e *Engine) Stats() map[string]int {
	e.mu.RLock()
	stats := e.lex.Stats()
	e.mu.RUnlock()

	for k, v := range e.cache.Stats() {
		stats[k] = v
	}
	return stats
}

// Close tears the lexicon down and returns how many nodes were released.
// The engine stays usable and empty.
func (e *Engine) Close() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	released := e.lex.Teardown()
	e.cache.Reset()
	e.updateGauges()
	log.Debugf("Released %d nodes", released)
	return released
}

// updateGauges expects the write lock
func (e *Engine) updateGauges() {
	vocabularyWords.Set(float64(e.lex.Len()))
	vocabularyNodes.Set(float64(e.lex.NodeCount()))
}

func cloneWords(words []string) []string {
	return append(make([]string, 0, len(words)), words...)
}

func cloneEntries(entries []lexicon.Entry) []lexicon.Entry {
	return append(make([]lexicon.Entry, 0, len(entries)), entries...)
}

package suggest

import (
	"math"
	"sync"

	"github.com/bastiangx/ninekey/pkg/keypad"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

type queryKind uint8

const (
	kindWildcard queryKind = iota
	kindPrefix
	kindCorrect
	kindDigits
	numKinds
)

func (k queryKind) String() string {
	switch k {
	case kindWildcard:
		return "wildcard"
	case kindPrefix:
		return "prefix"
	case kindCorrect:
		return "correct"
	case kindDigits:
		return "digits"
	}
	return "unknown"
}

type cacheKey struct {
	kind  queryKind
	query string
}

// QueryCache memoizes query results, one Patricia trie per query kind keyed by the query text.
// Keying by text lets a mutation of one word drop only the results it can change:
// prefix listings whose prefix starts the word, and digit resolutions sharing the word's first key.
type QueryCache struct {
	tries       [numKinds]*patricia.Trie
	accessTime  map[cacheKey]int64
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
	mu          sync.Mutex
}

// NewQueryCache creates a cache holding up to maxEntries results. maxEntries <= 0 disables caching.
func NewQueryCache(maxEntries int) *QueryCache {
	qc := &QueryCache{
		accessTime: make(map[cacheKey]int64),
		maxEntries: maxEntries,
	}
	for i := range qc.tries {
		qc.tries[i] = patricia.NewTrie()
	}
	return qc
}

// Get returns a cached result
func (qc *QueryCache) Get(kind queryKind, query string) (any, bool) {
	if qc.maxEntries <= 0 || query == "" {
		return nil, false
	}
	qc.mu.Lock()
	defer qc.mu.Unlock()

	item := qc.tries[kind].Get(patricia.Prefix(query))
	if item == nil {
		qc.misses++
		cacheMissesTotal.WithLabelValues(kind.String()).Inc()
		return nil, false
	}
	qc.hits++
	cacheHitsTotal.WithLabelValues(kind.String()).Inc()
	qc.accessTime[cacheKey{kind, query}] = qc.getNextAccessTime()
	return item, true
}

// Put stores a result, evicting the least recently used entry when full.
// Empty queries are never cached.
func (qc *QueryCache) Put(kind queryKind, query string, value any) {
	if qc.maxEntries <= 0 || query == "" {
		return
	}
	qc.mu.Lock()
	defer qc.mu.Unlock()

	key := cacheKey{kind, query}
	if _, exists := qc.accessTime[key]; !exists && len(qc.accessTime) >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.tries[kind].Set(patricia.Prefix(query), value)
	qc.accessTime[key] = qc.getNextAccessTime()
}

// Invalidate drops every cached result a mutation of word can change.
func (qc *QueryCache) Invalidate(word string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if len(qc.accessTime) == 0 {
		return
	}

	// wildcard and autocorrect scan the whole vocabulary
	qc.resetKind(kindWildcard)
	qc.resetKind(kindCorrect)

	// listings under any prefix of word
	var stale []string
	err := qc.tries[kindPrefix].VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting prefix cache: %v", err)
	}
	qc.deleteKeys(kindPrefix, stale)

	// resolutions whose first key reaches the word's path
	if code := keypad.Encode(word); code != "" {
		stale = stale[:0]
		err := qc.tries[kindDigits].VisitSubtree(patricia.Prefix(code[:1]), func(p patricia.Prefix, _ patricia.Item) error {
			stale = append(stale, string(p))
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting digit cache: %v", err)
		}
		qc.deleteKeys(kindDigits, stale)
	}
}

// Reset drops every cached result
func (qc *QueryCache) Reset() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	for k := queryKind(0); k < numKinds; k++ {
		qc.resetKind(k)
	}
}

// Stats returns cache statistics
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(qc.accessTime),
		"maxCacheEntries": qc.maxEntries,
		"cacheHits":       qc.hits,
		"cacheMisses":     qc.misses,
	}
}

func (qc *QueryCache) resetKind(kind queryKind) {
	qc.tries[kind] = patricia.NewTrie()
	for key := range qc.accessTime {
		if key.kind == kind {
			delete(qc.accessTime, key)
		}
	}
}

func (qc *QueryCache) deleteKeys(kind queryKind, queries []string) {
	for _, q := range queries {
		qc.tries[kind].Delete(patricia.Prefix(q))
		delete(qc.accessTime, cacheKey{kind, q})
	}
}

func (qc *QueryCache) getNextAccessTime() int64 {
	qc.accessCount++
	return qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldest cacheKey
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, accessTime := range qc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldest = key
			found = true
		}
	}

	if found {
		qc.tries[oldest.kind].Delete(patricia.Prefix(oldest.query))
		delete(qc.accessTime, oldest)
		log.Debugf("Evicted %s query '%s' from cache", oldest.kind, oldest.query)
	}
}

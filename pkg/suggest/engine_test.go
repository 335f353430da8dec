package suggest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bastiangx/ninekey/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(64)
	for word, count := range map[string]int{"cat": 5, "car": 3, "bat": 2, "act": 4} {
		require.NoError(t, e.Add(word, count))
	}
	return e
}

func TestAddValidation(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		word  string
		count int
		want  error
	}{
		{"empty word", "", 3, ErrInvalidWord},
		{"whitespace", "two words", 3, ErrInvalidWord},
		{"zero count", "dog", 0, ErrInvalidCount},
		{"negative count", "dog", -2, ErrInvalidCount},
		{"duplicate", "cat", 9, ErrWordExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Add(tt.word, tt.count)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, 5, e.Lookup("cat"), "refused duplicate leaves the count alone")
	assert.Equal(t, 14, e.Stats()["totalWeight"])
}

func TestUpdateValidation(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.Update("dog", 3), ErrWordNotFound)
	assert.ErrorIs(t, e.Update("cat", 0), ErrInvalidCount)

	require.NoError(t, e.Update("cat", 7))
	assert.Equal(t, 7, e.Lookup("cat"))
	assert.Equal(t, 16, e.Stats()["totalWeight"])
}

func TestRemove(t *testing.T) {
	e := newTestEngine(t)

	assert.True(t, e.Remove("cat"))
	assert.False(t, e.Remove("cat"))
	assert.False(t, e.Contains("cat"))
	assert.Equal(t, 0, e.Lookup("cat"))
	assert.Equal(t, 3, e.Stats()["words"])
}

func TestQueries(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, []string{"bat", "cat"}, e.WildcardSearch("?at"))
	assert.Equal(t, []lexicon.Entry{{Word: "car", Count: 3}, {Word: "cat", Count: 5}}, e.PrefixListing("ca"))
	assert.Equal(t, []lexicon.Entry{
		{Word: "cat", Count: 5},
		{Word: "act", Count: 4},
		{Word: "car", Count: 3},
		{Word: "bat", Count: 2},
	}, e.Autocorrect("228"))
	assert.Equal(t, []string{"2 c", "22 ca"}, e.DigitResolution("22"))
	assert.Equal(t, "ca", e.BestGuess("22"))
	assert.Equal(t, "", e.BestGuess("9"))
}

func TestCachedResultsFollowEdits(t *testing.T) {
	e := newTestEngine(t)

	assert.Len(t, e.PrefixListing("ca"), 2)
	assert.Len(t, e.PrefixListing("ca"), 2)
	stats := e.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])

	assert.Equal(t, []string{"2 c", "22 ca"}, e.DigitResolution("22"))
	assert.Equal(t, []string{"bat", "cat"}, e.WildcardSearch("?at"))

	require.NoError(t, e.Add("abacus", 20))
	require.NoError(t, e.Add("cab", 1))

	assert.Equal(t, []lexicon.Entry{
		{Word: "cab", Count: 1},
		{Word: "car", Count: 3},
		{Word: "cat", Count: 5},
	}, e.PrefixListing("ca"))
	assert.Equal(t, []string{"2 a", "22 ab"}, e.DigitResolution("22"))
	assert.Equal(t, []string{"bat", "cat"}, e.WildcardSearch("?at"))

	e.Remove("abacus")
	assert.Equal(t, []string{"2 c", "22 ca"}, e.DigitResolution("22"))
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	e := newTestEngine(t)

	first := e.PrefixListing("ca")
	first[0].Count = 99
	assert.Equal(t, 3, e.PrefixListing("ca")[0].Count)

	words := e.WildcardSearch("*")
	words[0] = "zzz"
	assert.Equal(t, "act", e.WildcardSearch("*")[0])
}

func TestValidateDigits(t *testing.T) {
	assert.NoError(t, ValidateDigits("2289"))
	assert.NoError(t, ValidateDigits("01"))
	assert.ErrorIs(t, ValidateDigits(""), ErrInvalidQuery)
	assert.ErrorIs(t, ValidateDigits("22a"), ErrInvalidQuery)
}

func TestClose(t *testing.T) {
	e := newTestEngine(t)
	e.PrefixListing("ca")

	// root, c, ca, cat, car, b, ba, bat, a, ac, act
	assert.Equal(t, 11, e.Close())

	stats := e.Stats()
	assert.Equal(t, 0, stats["words"])
	assert.Equal(t, 1, stats["nodes"])
	assert.Equal(t, 0, stats["cacheEntries"])
	assert.Empty(t, e.PrefixListing("ca"))

	require.NoError(t, e.Add("cat", 5))
	assert.Equal(t, 5, e.Lookup("cat"))
}

func TestConcurrentAccess(t *testing.T) {
	e := NewEngine(32)

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				word := fmt.Sprintf("w%dx%d", w, i)
				assert.NoError(t, e.Add(word, 1))
				e.PrefixListing("w")
				e.DigitResolution("9")
				e.Autocorrect("9")
				e.WildcardSearch("w*")
			}
		}(w)
	}
	wg.Wait()

	stats := e.Stats()
	assert.Equal(t, workers*perWorker, stats["words"])
	assert.Equal(t, workers*perWorker, stats["totalWeight"])
	assert.Len(t, e.PrefixListing("w"), workers*perWorker)
}

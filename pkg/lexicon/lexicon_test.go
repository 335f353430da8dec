package lexicon

import (
	"fmt"
	"math/rand"
	"testing"
)

// checkInvariants walks the whole tree and fails on any node whose prefix total
// is not the sum of the terminal weights beneath it, or whose non-terminal weight is set.
func checkInvariants(t *testing.T, l *Lexicon) {
	t.Helper()
	var visit func(n *Node, path string) int
	visit = func(n *Node, path string) int {
		sum := 0
		if n.terminal {
			sum += n.wordCount
		} else if n.wordCount != 0 {
			t.Errorf("non-terminal %q has wordCount %d", path, n.wordCount)
		}
		for r, c := range n.children {
			sum += visit(c, path+string(r))
		}
		if n.prefixCount != sum {
			t.Errorf("node %q: prefixCount %d, terminal sum %d", path, n.prefixCount, sum)
		}
		return sum
	}
	visit(l.root, "")
}

func TestInsertLookup(t *testing.T) {
	lex := New()
	words := map[string]int{
		"cat":   3,
		"car":   1,
		"cart":  4,
		"do":    5,
		"dog":   2,
		"a":     9,
		"Hello": 7,
	}
	for w, c := range words {
		lex.Insert(w, c)
	}

	for w, c := range words {
		if got := lex.Lookup(w); got != c {
			t.Errorf("Lookup(%q): expected %d, got %d", w, c, got)
		}
	}

	testCases := []struct {
		word     string
		expected int
	}{
		{"ca", 0},
		{"carts", 0},
		{"hello", 0},
		{"", 0},
		{"zzz", 0},
	}
	for _, tc := range testCases {
		if got := lex.Lookup(tc.word); got != tc.expected {
			t.Errorf("Lookup(%q): expected %d, got %d", tc.word, tc.expected, got)
		}
	}

	if lex.Len() != len(words) {
		t.Errorf("expected %d words, got %d", len(words), lex.Len())
	}
	if got := lex.Root().PrefixCount(); got != 31 {
		t.Errorf("root prefixCount: expected 31, got %d", got)
	}
	checkInvariants(t, lex)
}

func TestRemove(t *testing.T) {
	lex := New()
	lex.Insert("cat", 3)
	lex.Insert("cart", 4)

	if lex.Remove("ca") {
		t.Error("removing a non-terminal prefix should fail")
	}
	if lex.Remove("cow") {
		t.Error("removing a missing word should fail")
	}
	if !lex.Remove("cat") {
		t.Fatal("removing cat should succeed")
	}
	if lex.Remove("cat") {
		t.Error("removing cat twice should fail")
	}
	if got := lex.Lookup("cat"); got != 0 {
		t.Errorf("Lookup(cat) after remove: expected 0, got %d", got)
	}
	if got := lex.Lookup("cart"); got != 4 {
		t.Errorf("Lookup(cart): expected 4, got %d", got)
	}
	if got := lex.Root().PrefixCount(); got != 4 {
		t.Errorf("root prefixCount: expected 4, got %d", got)
	}
	checkInvariants(t, lex)
}

func TestRemoveKeepsDeadBranch(t *testing.T) {
	lex := New()
	lex.Insert("zebra", 6)
	nodes := lex.NodeCount()

	if !lex.Remove("zebra") {
		t.Fatal("remove failed")
	}
	if lex.NodeCount() != nodes {
		t.Errorf("nodes should not be pruned: before %d, after %d", nodes, lex.NodeCount())
	}
	z, ok := lex.Root().Child('z')
	if !ok {
		t.Fatal("dead branch was pruned")
	}
	if z.PrefixCount() != 0 {
		t.Errorf("dead branch prefixCount: expected 0, got %d", z.PrefixCount())
	}
	checkInvariants(t, lex)
}

func TestUpdate(t *testing.T) {
	lex := New()
	lex.Insert("cat", 3)

	if !lex.Update("cat", 7) {
		t.Fatal("update of stored word failed")
	}
	if got := lex.Lookup("cat"); got != 7 {
		t.Errorf("Lookup(cat): expected 7, got %d", got)
	}
	if got := lex.Root().PrefixCount(); got != 7 {
		t.Errorf("root prefixCount should reflect 7, not 10: got %d", got)
	}
	if lex.Update("dog", 1) {
		t.Error("update of missing word should fail")
	}
	if lex.Update("ca", 1) {
		t.Error("update of a bare prefix should fail")
	}
	checkInvariants(t, lex)
}

func TestContainsZeroWeight(t *testing.T) {
	lex := New()
	lex.Insert("nil", 0)
	if !lex.Contains("nil") {
		t.Error("a word stored with weight 0 is still stored")
	}
	if lex.Lookup("nil") != 0 {
		t.Error("weight should be 0")
	}
	if !lex.Update("nil", 2) {
		t.Error("update should find the zero-weight word")
	}
	checkInvariants(t, lex)
}

// the insert precondition: a second insert overwrites the weight but inflates the path totals
func TestDuplicateInsertContract(t *testing.T) {
	lex := New()
	lex.Insert("cat", 3)
	lex.Insert("cat", 5)

	if got := lex.Lookup("cat"); got != 5 {
		t.Errorf("weight is assigned: expected 5, got %d", got)
	}
	if got := lex.Root().PrefixCount(); got != 8 {
		t.Errorf("path totals accumulate: expected 8, got %d", got)
	}
	if lex.Len() != 1 {
		t.Errorf("word counted twice: %d", lex.Len())
	}
}

func TestRandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	letters := []rune("abcde")
	randWord := func() string {
		n := 1 + rng.Intn(5)
		w := make([]rune, n)
		for i := range w {
			w[i] = letters[rng.Intn(len(letters))]
		}
		return string(w)
	}

	lex := New()
	shadow := map[string]int{}
	for i := 0; i < 2000; i++ {
		w := randWord()
		c := rng.Intn(100)
		switch rng.Intn(3) {
		case 0:
			if _, ok := shadow[w]; !ok {
				lex.Insert(w, c)
				shadow[w] = c
			}
		case 1:
			_, ok := shadow[w]
			if lex.Remove(w) != ok {
				t.Fatalf("Remove(%q) disagreed with shadow map", w)
			}
			delete(shadow, w)
		case 2:
			_, ok := shadow[w]
			if lex.Update(w, c) != ok {
				t.Fatalf("Update(%q) disagreed with shadow map", w)
			}
			if ok {
				shadow[w] = c
			}
		}
	}

	total := 0
	for w, c := range shadow {
		total += c
		if got := lex.Lookup(w); got != c {
			t.Errorf("Lookup(%q): expected %d, got %d", w, c, got)
		}
	}
	if lex.Root().PrefixCount() != total {
		t.Errorf("root prefixCount: expected %d, got %d", total, lex.Root().PrefixCount())
	}
	if lex.Len() != len(shadow) {
		t.Errorf("word count: expected %d, got %d", len(shadow), lex.Len())
	}
	checkInvariants(t, lex)
}

func TestTeardown(t *testing.T) {
	for _, n := range []int{0, 1, 10, 500} {
		t.Run(fmt.Sprintf("words_%d", n), func(t *testing.T) {
			lex := New()
			for i := 0; i < n; i++ {
				lex.Insert(fmt.Sprintf("w%d", i), i)
			}
			created := lex.NodeCount()
			released := lex.Teardown()
			if released != created {
				t.Errorf("released %d nodes, created %d", released, created)
			}
			if lex.NodeCount() != 1 || lex.Len() != 0 || lex.Root().PrefixCount() != 0 {
				t.Errorf("lexicon not empty after teardown: %v", lex.Stats())
			}

			// still usable
			lex.Insert("again", 1)
			if lex.Lookup("again") != 1 {
				t.Error("lexicon unusable after teardown")
			}
		})
	}
}

func TestStats(t *testing.T) {
	lex := New()
	lex.Insert("ab", 2)
	lex.Insert("ac", 3)
	stats := lex.Stats()
	if stats["words"] != 2 || stats["nodes"] != 4 || stats["totalWeight"] != 5 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

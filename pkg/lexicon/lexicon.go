/*
Package lexicon implements the weighted word trie behind 9-key predictive typing.

Every node carries the weight of the word ending on it (when it is terminal) and the summed weight of its
whole subtree. That aggregate is kept current on every mutation and is what ranks prefixes while the user
is still typing digits.

# Operations

	lex := lexicon.New()
	lex.Insert("cat", 5)
	lex.Insert("car", 3)

	lex.Lookup("cat")            // 5
	lex.WildcardSearch("ca?")    // [car cat]
	lex.PrefixListing("ca")      // [{car 3} {cat 5}]
	lex.Autocorrect("228")       // [{cat 5} {car 3}]
	lex.DigitResolution("22")    // ["2 c" "22 ca"]

Insert expects a word that is not stored yet. Inserting a stored word again overwrites its weight but keeps
adding to the aggregates of its path, which breaks the prefix totals. Check Contains first, or use
suggest.Engine.Add which refuses duplicates.

Removed words leave their nodes in place. A branch whose words are all gone stays in the tree with a
prefix weight of 0 until Teardown.

A Lexicon is not safe for concurrent use. Wrap it in one lock, as suggest.Engine does.
*/
package lexicon

// Entry is a stored word and its weight.
type Entry struct {
	Word  string `msgpack:"w" json:"word"`
	Count int    `msgpack:"n" json:"count"`
}

// Lexicon is a trie of weighted words.
type Lexicon struct {
	root  *Node
	words int
	nodes int
}

// New returns an empty lexicon holding only the root.
func New() *Lexicon {
	return &Lexicon{root: newNode(), nodes: 1}
}

// Root exposes the root node for read-only inspection.
func (l *Lexicon) Root() *Node {
	return l.root
}

// Insert stores word with weight count, creating any missing nodes and adding count to the prefix total
// of every node on the path, root included.
//
// The word must not be stored already: the weight is assigned, not accumulated, while the path totals
// are still incremented. Callers that cannot rule out duplicates check Contains first.
func (l *Lexicon) Insert(word string, count int) {
	cur := l.root
	cur.prefixCount += count
	for _, r := range word {
		next := cur.child(r)
		if next == nil {
			next = newNode()
			cur.children[r] = next
			l.nodes++
		}
		cur = next
		cur.prefixCount += count
	}
	if !cur.terminal {
		l.words++
	}
	cur.terminal = true
	cur.wordCount = count
}

// Remove unmarks word and subtracts its weight from every node on its path.
// It returns false and changes nothing when word is not stored. Nodes are never deleted.
func (l *Lexicon) Remove(word string) bool {
	path := []*Node{l.root}
	cur := l.root
	for _, r := range word {
		cur = cur.child(r)
		if cur == nil {
			return false
		}
		path = append(path, cur)
	}
	if !cur.terminal {
		return false
	}

	old := cur.wordCount
	for _, n := range path {
		n.prefixCount -= old
	}
	cur.terminal = false
	cur.wordCount = 0
	l.words--
	return true
}

// Update replaces the weight of a stored word, keeping every path total consistent.
// It returns false when word is not stored.
func (l *Lexicon) Update(word string, count int) bool {
	if !l.Contains(word) {
		return false
	}
	l.Remove(word)
	l.Insert(word, count)
	return true
}

// Lookup returns the weight of word, or 0 when it is not stored.
func (l *Lexicon) Lookup(word string) int {
	if n := l.find(word); n != nil && n.terminal {
		return n.wordCount
	}
	return 0
}

// Contains reports whether word is stored, whatever its weight.
func (l *Lexicon) Contains(word string) bool {
	n := l.find(word)
	return n != nil && n.terminal
}

// find walks the path spelled by s and returns its node, or nil.
func (l *Lexicon) find(s string) *Node {
	cur := l.root
	for _, r := range s {
		cur = cur.child(r)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// walk calls fn for every terminal in the subtree of n, passing the full word.
// path holds the runes leading to n and is reused across calls.
func walk(n *Node, path []rune, fn func(word string, n *Node)) {
	if n.terminal {
		fn(string(path), n)
	}
	for r, c := range n.children {
		walk(c, append(path, r), fn)
	}
}

// Stats reports the number of stored words, allocated nodes (root included) and the total weight.
func (l *Lexicon) Stats() map[string]int {
	return map[string]int{
		"words":       l.words,
		"nodes":       l.nodes,
		"totalWeight": l.root.prefixCount,
	}
}

// Len returns the number of stored words.
func (l *Lexicon) Len() int {
	return l.words
}

// NodeCount returns the number of nodes currently allocated, root included.
func (l *Lexicon) NodeCount() int {
	return l.nodes
}

// Teardown releases every node, children before their parent, and returns how many were released.
// The lexicon is left empty with a fresh root and can be reused.
func (l *Lexicon) Teardown() int {
	released := release(l.root)
	l.root = newNode()
	l.words = 0
	l.nodes = 1
	return released
}

func release(n *Node) int {
	released := 0
	for r, c := range n.children {
		released += release(c)
		delete(n.children, r)
	}
	n.children = nil
	return released + 1
}

package lexicon

// Node is one vertex of the lexicon trie, reached from its parent over a single rune.
type Node struct {
	children map[rune]*Node
	// terminal is set when the path from the root spells a stored word
	terminal bool
	// wordCount is the weight of the word ending here; 0 unless terminal
	wordCount int
	// prefixCount sums wordCount over every terminal in this subtree, self included
	prefixCount int
}

func newNode() *Node {
	return &Node{children: make(map[rune]*Node)}
}

// child returns the node under r, or nil.
func (n *Node) child(r rune) *Node {
	return n.children[r]
}

// IsTerminal reports whether a stored word ends at this node.
func (n *Node) IsTerminal() bool { return n.terminal }

// WordCount is the weight of the word ending at this node.
func (n *Node) WordCount() int { return n.wordCount }

// PrefixCount is the total weight of all words in this subtree.
func (n *Node) PrefixCount() int { return n.prefixCount }

// Children returns the edge runes leaving this node, in no particular order.
func (n *Node) Children() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	return keys
}

// Child returns the node reached over r and whether it exists.
func (n *Node) Child(r rune) (*Node, bool) {
	c, ok := n.children[r]
	return c, ok
}

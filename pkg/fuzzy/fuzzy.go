// Package fuzzy provides edit-distance helpers for approximate matching of typed keys.
package fuzzy

// Distance returns the Levenshtein distance between a and b:
// the least number of single-byte insertions, deletions and substitutions turning a into b.
// Inputs are compared bytewise, which is what digit strings need.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// two rolling rows of the dp table
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Within reports whether a and b are at most maxDist edits apart.
// A length gap larger than maxDist answers false without running the full table.
func Within(a, b string, maxDist int) bool {
	if abs(len(a)-len(b)) > maxDist {
		return false
	}
	return Distance(a, b) <= maxDist
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

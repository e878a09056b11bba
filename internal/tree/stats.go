package tree

import "cmp"

// Stats holds shape metrics for a tree.
type Stats struct {
	// Len is the number of nodes.
	Len int

	// Height is the height of the root (-1 for an empty tree).
	Height int

	// Leaves is the number of nodes without children.
	Leaves int

	// MinLeafDepth is the depth of the shallowest leaf (-1 for an empty tree).
	MinLeafDepth int

	// Balanced is true if no node's subtree heights differ by more than one.
	Balanced bool
}

// Stats computes shape metrics in a single pass.
func (t *Tree[T]) Stats() Stats {
	s := Stats{Height: -1, MinLeafDepth: -1, Balanced: true}
	s.Height = collectStats(t.root, 0, &s)
	return s
}

// collectStats accumulates node, leaf and balance information for the
// subtree at n and returns its height.
func collectStats[T cmp.Ordered](n *Node[T], depth int, s *Stats) int {
	if n == nil {
		return -1
	}
	s.Len++
	if n.IsLeaf() {
		s.Leaves++
		if s.MinLeafDepth < 0 || depth < s.MinLeafDepth {
			s.MinLeafDepth = depth
		}
	}

	lh := collectStats(n.left, depth+1, s)
	rh := collectStats(n.right, depth+1, s)
	if lh-rh > 1 || rh-lh > 1 {
		s.Balanced = false
	}
	return max(lh, rh) + 1
}

package tree

import "cmp"

// Height returns the number of edges on the longest downward path from n to
// a leaf. The node is located by value, so a handle from an earlier Find is
// measured at wherever its value now lives. Returns -1 if n is nil or its
// value is not in the tree.
func (t *Tree[T]) Height(n *Node[T]) int {
	if n == nil {
		return -1
	}
	return t.HeightOf(n.value)
}

// HeightOf returns the height of the node holding value, or -1 if absent.
func (t *Tree[T]) HeightOf(value T) int {
	n, ok := t.Find(value)
	if !ok {
		return -1
	}
	return height(n)
}

// TreeHeight returns the height of the root, or -1 for an empty tree.
func (t *Tree[T]) TreeHeight() int {
	return height(t.root)
}

// Depth returns the number of edges from the root to the node holding n's
// value. Returns -1 if n is nil or its value is not in the tree.
func (t *Tree[T]) Depth(n *Node[T]) int {
	if n == nil {
		return -1
	}
	return t.DepthOf(n.value)
}

// DepthOf returns the depth of the node holding value, or -1 if absent.
func (t *Tree[T]) DepthOf(value T) int {
	depth := 0
	current := t.root
	for current != nil {
		switch c := cmp.Compare(value, current.value); {
		case c < 0:
			current = current.left
		case c > 0:
			current = current.right
		default:
			return depth
		}
		depth++
	}
	return -1
}

// IsBalanced reports whether every node's left and right subtree heights
// differ by at most one.
func (t *Tree[T]) IsBalanced() bool {
	return IsBalancedFrom(t.root)
}

// IsBalancedFrom reports whether the subtree rooted at n is balanced.
// A nil subtree is balanced.
func IsBalancedFrom[T cmp.Ordered](n *Node[T]) bool {
	balanced := true
	checkHeight(n, &balanced)
	return balanced
}

// checkHeight computes the height of n bottom-up and clears balanced if any
// node in the subtree is out of balance.
func checkHeight[T cmp.Ordered](n *Node[T], balanced *bool) int {
	if n == nil {
		return -1
	}
	lh := checkHeight(n.left, balanced)
	rh := checkHeight(n.right, balanced)
	if lh-rh > 1 || rh-lh > 1 {
		*balanced = false
	}
	return max(lh, rh) + 1
}

// ReBalance rebuilds the tree into a minimal-height shape holding the same
// values. IsBalanced is true afterwards.
func (t *Tree[T]) ReBalance() {
	sorted := t.InOrder()
	t.root = buildBalanced(sorted, 0, len(sorted)-1)
	t.size = len(sorted)
}

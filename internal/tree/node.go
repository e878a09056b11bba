package tree

import "cmp"

// Node is a single element of a Tree.
// Outside this package a *Node is a read-only handle: the value and links
// can be inspected but not changed.
type Node[T cmp.Ordered] struct {
	value T
	left  *Node[T]
	right *Node[T]
}

// newNode creates a leaf holding value.
func newNode[T cmp.Ordered](value T) *Node[T] {
	return &Node[T]{value: value}
}

// Value returns the value stored in the node.
func (n *Node[T]) Value() T {
	return n.value
}

// Left returns the left child, or nil.
func (n *Node[T]) Left() *Node[T] {
	if n == nil {
		return nil
	}
	return n.left
}

// Right returns the right child, or nil.
func (n *Node[T]) Right() *Node[T] {
	if n == nil {
		return nil
	}
	return n.right
}

// IsLeaf returns true if the node has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// clone deep-copies the subtree rooted at n.
func (n *Node[T]) clone() *Node[T] {
	if n == nil {
		return nil
	}
	return &Node[T]{
		value: n.value,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}

// height returns the number of edges on the longest path from n down to a
// leaf. A nil subtree has height -1.
func height[T cmp.Ordered](n *Node[T]) int {
	if n == nil {
		return -1
	}
	return max(height(n.left), height(n.right)) + 1
}

// minNode returns the leftmost node under n. n must not be nil.
func minNode[T cmp.Ordered](n *Node[T]) *Node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// maxNode returns the rightmost node under n. n must not be nil.
func maxNode[T cmp.Ordered](n *Node[T]) *Node[T] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// buildBalanced builds a minimal-height subtree from sorted[lo:hi+1].
// The lower-middle element becomes the root on even-length ranges.
func buildBalanced[T cmp.Ordered](sorted []T, lo, hi int) *Node[T] {
	if lo > hi {
		return nil
	}
	mid := (lo + hi) / 2
	n := newNode(sorted[mid])
	n.left = buildBalanced(sorted, lo, mid-1)
	n.right = buildBalanced(sorted, mid+1, hi)
	return n
}

// deleteNode removes value from the subtree rooted at n and returns the new
// subtree root. A node with two children takes its in-order successor's value
// and the successor is removed from the right subtree instead.
func deleteNode[T cmp.Ordered](n *Node[T], value T, removed *bool) *Node[T] {
	if n == nil {
		return nil
	}

	switch c := cmp.Compare(value, n.value); {
	case c < 0:
		n.left = deleteNode(n.left, value, removed)
	case c > 0:
		n.right = deleteNode(n.right, value, removed)
	default:
		if n.left == nil {
			*removed = true
			return n.right
		}
		if n.right == nil {
			*removed = true
			return n.left
		}
		n.value = minNode(n.right).value
		n.right = deleteNode(n.right, n.value, removed)
	}
	return n
}

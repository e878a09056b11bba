package tree

import (
	"cmp"
	"slices"
)

// Tree is an ordered set of values stored in a binary search tree.
// The zero value is an empty tree ready to use.
type Tree[T cmp.Ordered] struct {
	root *Node[T]
	size int
}

// New creates an empty tree.
func New[T cmp.Ordered]() *Tree[T] {
	return &Tree[T]{}
}

// Build creates a height-balanced tree from values.
// The input is sorted and deduplicated first; the slice itself is not modified.
func Build[T cmp.Ordered](values []T) *Tree[T] {
	sorted := sortedUnique(values)
	return &Tree[T]{
		root: buildBalanced(sorted, 0, len(sorted)-1),
		size: len(sorted),
	}
}

// sortedUnique returns an ascending copy of values with duplicates removed.
func sortedUnique[T cmp.Ordered](values []T) []T {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, cmp.Compare[T])
	return slices.CompactFunc(sorted, func(a, b T) bool {
		return cmp.Compare(a, b) == 0
	})
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Len returns the number of values in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// IsEmpty returns true if the tree holds no values.
func (t *Tree[T]) IsEmpty() bool {
	return t.root == nil
}

// Clear removes every value.
func (t *Tree[T]) Clear() {
	t.root = nil
	t.size = 0
}

// Clone returns a deep copy with the same shape.
func (t *Tree[T]) Clone() *Tree[T] {
	return &Tree[T]{root: t.root.clone(), size: t.size}
}

// Insert adds value as a new leaf.
// Returns ErrDuplicateValue and leaves the tree untouched if value is already present.
func (t *Tree[T]) Insert(value T) error {
	if t.root == nil {
		t.root = newNode(value)
		t.size = 1
		return nil
	}

	current := t.root
	for {
		switch c := cmp.Compare(value, current.value); {
		case c < 0:
			if current.left == nil {
				current.left = newNode(value)
				t.size++
				return nil
			}
			current = current.left
		case c > 0:
			if current.right == nil {
				current.right = newNode(value)
				t.size++
				return nil
			}
			current = current.right
		default:
			return ErrDuplicateValue
		}
	}
}

// Delete removes value from the tree.
// Returns true if a node was removed, false if value was not present.
func (t *Tree[T]) Delete(value T) bool {
	var removed bool
	t.root = deleteNode(t.root, value, &removed)
	if removed {
		t.size--
	}
	return removed
}

// Find returns the node holding value.
// The node is a read-only handle into the tree and is invalidated by later
// mutations; prefer Contains for plain membership tests.
func (t *Tree[T]) Find(value T) (*Node[T], bool) {
	current := t.root
	for current != nil {
		switch c := cmp.Compare(value, current.value); {
		case c < 0:
			current = current.left
		case c > 0:
			current = current.right
		default:
			return current, true
		}
	}
	return nil, false
}

// Contains returns true if value is stored in the tree.
func (t *Tree[T]) Contains(value T) bool {
	_, ok := t.Find(value)
	return ok
}

// Min returns the smallest value under the subtree root n.
// Returns ErrEmptySubtree if n is nil.
func Min[T cmp.Ordered](n *Node[T]) (T, error) {
	if n == nil {
		var zero T
		return zero, ErrEmptySubtree
	}
	return minNode(n).value, nil
}

// Max returns the largest value under the subtree root n.
// Returns ErrEmptySubtree if n is nil.
func Max[T cmp.Ordered](n *Node[T]) (T, error) {
	if n == nil {
		var zero T
		return zero, ErrEmptySubtree
	}
	return maxNode(n).value, nil
}

// Min returns the smallest value in the tree.
func (t *Tree[T]) Min() (T, error) {
	if t.root == nil {
		var zero T
		return zero, ErrEmptyTree
	}
	return Min(t.root)
}

// Max returns the largest value in the tree.
func (t *Tree[T]) Max() (T, error) {
	if t.root == nil {
		var zero T
		return zero, ErrEmptyTree
	}
	return Max(t.root)
}

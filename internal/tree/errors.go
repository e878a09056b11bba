package tree

import "errors"

// Errors returned by tree operations.
var (
	// ErrDuplicateValue is returned by Insert when the value is already stored.
	ErrDuplicateValue = errors.New("value already present")

	// ErrEmptySubtree is returned by Min and Max when given a nil subtree root.
	ErrEmptySubtree = errors.New("empty subtree")

	// ErrEmptyTree is returned by tree-level queries on a tree with no root.
	ErrEmptyTree = errors.New("tree is empty")
)

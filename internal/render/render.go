// Package render draws the shape of a tree for humans.
//
// The layout puts each right subtree above its parent and each left subtree
// below it, joined by box-drawing connectors:
//
//	│       ┌── 9
//	│   ┌── 7
//	└── 3
//	    └── 1
//
// Lines and Fprint produce the layout as text. Viewer shows it on a terminal
// screen with scrolling.
package render

import (
	"cmp"
	"fmt"
	"io"

	"github.com/dshills/ordtree/internal/tree"
)

// Connector pieces.
const (
	branchUp   = "┌── "
	branchDown = "└── "
	pipe       = "│   "
	blank      = "    "
)

// Lines returns the rendered layout of the subtree at root, one string per
// node. A nil root renders as no lines.
func Lines[T cmp.Ordered](root *tree.Node[T]) []string {
	var lines []string
	appendLines(&lines, root, "", true)
	return lines
}

// appendLines renders n with the given prefix. isLeft reports whether n is
// its parent's left child (the root counts as left).
func appendLines[T cmp.Ordered](lines *[]string, n *tree.Node[T], prefix string, isLeft bool) {
	if n == nil {
		return
	}

	if right := n.Right(); right != nil {
		next := prefix + blank
		if isLeft {
			next = prefix + pipe
		}
		appendLines(lines, right, next, false)
	}

	branch := branchUp
	if isLeft {
		branch = branchDown
	}
	*lines = append(*lines, prefix+branch+fmt.Sprint(n.Value()))

	if left := n.Left(); left != nil {
		next := prefix + pipe
		if isLeft {
			next = prefix + blank
		}
		appendLines(lines, left, next, true)
	}
}

// Fprint writes the rendered layout of the subtree at root to w.
func Fprint[T cmp.Ordered](w io.Writer, root *tree.Node[T]) error {
	for _, line := range Lines(root) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing tree: %w", err)
		}
	}
	return nil
}

// Summary returns a one-line description of a tree's shape.
func Summary[T cmp.Ordered](t *tree.Tree[T]) string {
	s := t.Stats()
	return fmt.Sprintf("%d values, height %d, %d leaves, balanced %t", s.Len, s.Height, s.Leaves, s.Balanced)
}

package tree

import (
	"cmp"
	"fmt"
	"iter"
)

// Order selects a traversal order.
type Order int

// Traversal orders.
const (
	// LevelOrder visits nodes breadth-first, root first, left before right.
	LevelOrder Order = iota
	// PreOrder visits a node, then its left subtree, then its right subtree.
	PreOrder
	// InOrder visits the left subtree, the node, then the right subtree.
	// Values come out in ascending order.
	InOrder
	// PostOrder visits the left subtree, the right subtree, then the node.
	PostOrder
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case LevelOrder:
		return "levelOrder"
	case PreOrder:
		return "preOrder"
	case InOrder:
		return "inOrder"
	case PostOrder:
		return "postOrder"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Orders lists every traversal order.
var Orders = []Order{LevelOrder, PreOrder, InOrder, PostOrder}

// Nodes returns an iterator over the tree's nodes in the given order.
// An empty tree yields nothing. The tree must not be mutated during iteration.
func (t *Tree[T]) Nodes(order Order) iter.Seq[*Node[T]] {
	return Walk(t.root, order)
}

// All returns an iterator over the tree's values in the given order.
func (t *Tree[T]) All(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range t.Nodes(order) {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Walk returns an iterator over the subtree rooted at root in the given order.
func Walk[T cmp.Ordered](root *Node[T], order Order) iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if root == nil {
			return
		}
		switch order {
		case LevelOrder:
			walkLevel(root, yield)
		case PreOrder:
			walkPre(root, yield)
		case InOrder:
			walkIn(root, yield)
		case PostOrder:
			walkPost(root, yield)
		}
	}
}

// walkLevel visits nodes breadth-first using a FIFO queue.
func walkLevel[T cmp.Ordered](root *Node[T], yield func(*Node[T]) bool) {
	queue := []*Node[T]{root}
	for len(queue) > 0 {
		current := queue[0]
		queue[0] = nil
		queue = queue[1:]

		if current.left != nil {
			queue = append(queue, current.left)
		}
		if current.right != nil {
			queue = append(queue, current.right)
		}
		if !yield(current) {
			return
		}
	}
}

// walkPre visits nodes root-first using an explicit stack.
func walkPre[T cmp.Ordered](root *Node[T], yield func(*Node[T]) bool) {
	stack := make([]*Node[T], 0, 16)
	stack = append(stack, root)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !yield(current) {
			return
		}
		// Right is pushed first so left is popped first
		if current.right != nil {
			stack = append(stack, current.right)
		}
		if current.left != nil {
			stack = append(stack, current.left)
		}
	}
}

// walkIn visits nodes in ascending order using an explicit stack.
func walkIn[T cmp.Ordered](root *Node[T], yield func(*Node[T]) bool) {
	stack := make([]*Node[T], 0, 16)
	current := root
	for current != nil || len(stack) > 0 {
		for current != nil {
			stack = append(stack, current)
			current = current.left
		}
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !yield(current) {
			return
		}
		current = current.right
	}
}

// postFrame is a position in a post-order walk.
type postFrame[T cmp.Ordered] struct {
	node      *Node[T]
	rightDone bool // right subtree already pushed
}

// walkPost visits children before parents using an explicit stack.
func walkPost[T cmp.Ordered](root *Node[T], yield func(*Node[T]) bool) {
	stack := make([]postFrame[T], 0, 16)
	for n := root; n != nil; n = n.left {
		stack = append(stack, postFrame[T]{node: n})
	}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		if !frame.rightDone && frame.node.right != nil {
			frame.rightDone = true
			for n := frame.node.right; n != nil; n = n.left {
				stack = append(stack, postFrame[T]{node: n})
			}
			continue
		}

		node := frame.node
		stack = stack[:len(stack)-1]
		if !yield(node) {
			return
		}
	}
}

// Transform collects the tree's nodes in the given order and passes the full
// sequence to fn.
func Transform[T cmp.Ordered, R any](t *Tree[T], order Order, fn func([]*Node[T]) R) R {
	nodes := make([]*Node[T], 0, t.size)
	for n := range t.Nodes(order) {
		nodes = append(nodes, n)
	}
	return fn(nodes)
}

// NodeValues extracts the value of each node. It is the default transform.
func NodeValues[T cmp.Ordered](nodes []*Node[T]) []T {
	values := make([]T, len(nodes))
	for i, n := range nodes {
		values[i] = n.value
	}
	return values
}

// Values returns the tree's values in the given order.
func (t *Tree[T]) Values(order Order) []T {
	return Transform(t, order, NodeValues[T])
}

// LevelOrder returns the values breadth-first.
func (t *Tree[T]) LevelOrder() []T {
	return t.Values(LevelOrder)
}

// PreOrder returns the values in pre-order.
func (t *Tree[T]) PreOrder() []T {
	return t.Values(PreOrder)
}

// InOrder returns the values in ascending order.
func (t *Tree[T]) InOrder() []T {
	return t.Values(InOrder)
}

// PostOrder returns the values in post-order.
func (t *Tree[T]) PostOrder() []T {
	return t.Values(PostOrder)
}

// Package tree provides an ordered set backed by a plain binary search tree.
//
// Every node holds one value. All values in a node's left subtree compare
// strictly less than the node and all values in its right subtree compare
// strictly greater, so a value appears at most once.
//
// The tree does not rebalance itself. Insert and Delete keep the search-tree
// ordering but may let the shape degrade; ReBalance rebuilds a minimal-height
// tree from the in-order sequence when the caller asks for it.
//
// Basic usage:
//
//	t := tree.Build([]int{7, 3, 3, 9, 1}) // root 3, in-order [1 3 7 9]
//	_ = t.Insert(4)
//	t.Delete(7)
//	if !t.IsBalanced() {
//	    t.ReBalance()
//	}
//	for v := range t.All(tree.InOrder) {
//	    fmt.Println(v)
//	}
//
// Traversals are iterative, so a badly degenerate tree does not grow the
// call stack during iteration.
//
// A Tree is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
package tree

package tree

import (
	"math/bits"
	"math/rand"
	"slices"
	"testing"
)

func TestHeight(t *testing.T) {
	tr := sampleTree(t)

	tests := []struct {
		value int
		want  int
	}{
		{32, 2},
		{21, 1},
		{38, 1},
		{7, 0},
		{47, 0},
		{99, -1},
	}

	for _, tt := range tests {
		if got := tr.HeightOf(tt.value); got != tt.want {
			t.Errorf("HeightOf(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}

	if got := tr.Height(tr.Root()); got != 2 {
		t.Errorf("Height(root) = %d, want 2", got)
	}
	if got := tr.Height(nil); got != -1 {
		t.Errorf("Height(nil) = %d, want -1", got)
	}
	if got := tr.TreeHeight(); got != 2 {
		t.Errorf("TreeHeight() = %d, want 2", got)
	}
	if got := New[int]().TreeHeight(); got != -1 {
		t.Errorf("TreeHeight() on empty tree = %d, want -1", got)
	}
}

func TestDepth(t *testing.T) {
	tr := sampleTree(t)

	tests := []struct {
		value int
		want  int
	}{
		{32, 0},
		{21, 1},
		{38, 1},
		{28, 2},
		{35, 2},
		{99, -1},
	}

	for _, tt := range tests {
		if got := tr.DepthOf(tt.value); got != tt.want {
			t.Errorf("DepthOf(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}

	n, _ := tr.Find(47)
	if got := tr.Depth(n); got != 2 {
		t.Errorf("Depth(node 47) = %d, want 2", got)
	}
	if got := tr.Depth(nil); got != -1 {
		t.Errorf("Depth(nil) = %d, want -1", got)
	}
}

func TestHeightDepthForeignNode(t *testing.T) {
	tr := sampleTree(t)
	other := Build([]int{500})

	foreign := other.Root()
	if got := tr.Height(foreign); got != -1 {
		t.Errorf("Height(foreign) = %d, want -1", got)
	}
	if got := tr.Depth(foreign); got != -1 {
		t.Errorf("Depth(foreign) = %d, want -1", got)
	}

	// Handles are resolved by value, so an equal value elsewhere counts.
	twin := Build([]int{38}).Root()
	if got := tr.Depth(twin); got != 1 {
		t.Errorf("Depth(equal-valued node) = %d, want 1", got)
	}
}

func TestIsBalancedChain(t *testing.T) {
	tr := New[int]()
	for _, v := range []int{1, 2, 3, 4} {
		_ = tr.Insert(v)
	}
	if tr.IsBalanced() {
		t.Error("ascending chain 1..4 should not be balanced")
	}

	tr.ReBalance()
	if !tr.IsBalanced() {
		t.Error("IsBalanced() = false after ReBalance()")
	}
	if got, want := tr.InOrder(), []int{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("InOrder() = %v, want %v", got, want)
	}
	if got := tr.Root().Value(); got != 2 {
		t.Errorf("root after ReBalance() = %d, want 2", got)
	}
}

func TestIsBalancedDeepViolation(t *testing.T) {
	// Root heights match but the left subtree hides a chain.
	//
	//          50
	//        /    \
	//      20      80
	//     /       /  \
	//    10      70   90
	//   /
	//  5
	tr := New[int]()
	for _, v := range []int{50, 20, 80, 10, 70, 90, 5} {
		_ = tr.Insert(v)
	}
	if tr.IsBalanced() {
		t.Error("tree with unbalanced node 20 reported balanced")
	}
	if !IsBalancedFrom(tr.Root().Right()) {
		t.Error("right subtree should be balanced")
	}
	if IsBalancedFrom(tr.Root().Left()) {
		t.Error("left subtree should not be balanced")
	}
	if !IsBalancedFrom[int](nil) {
		t.Error("nil subtree should be balanced")
	}
}

func TestReBalanceHeightBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{1, 2, 3, 7, 8, 100, 1000} {
		tr := New[int]()
		for tr.Len() < n {
			_ = tr.Insert(rng.Intn(n * 10))
		}
		tr.ReBalance()

		if !tr.IsBalanced() {
			t.Errorf("n=%d: not balanced after ReBalance()", n)
		}
		bound := bits.Len(uint(n)) // ceil(log2(n+1))
		if h := tr.TreeHeight(); h > bound {
			t.Errorf("n=%d: height %d exceeds bound %d", n, h, bound)
		}
		if tr.Len() != n {
			t.Errorf("n=%d: Len() = %d after ReBalance()", n, tr.Len())
		}
		checkInvariant(t, tr)
	}
}

func TestReBalanceEmpty(t *testing.T) {
	tr := New[int]()
	tr.ReBalance()
	if !tr.IsEmpty() || !tr.IsBalanced() {
		t.Error("ReBalance() on empty tree should leave it empty and balanced")
	}
}

func TestStats(t *testing.T) {
	tr := sampleTree(t)
	_ = tr.Insert(50)
	_ = tr.Insert(60)

	s := tr.Stats()
	want := Stats{Len: 9, Height: 4, Leaves: 4, MinLeafDepth: 2, Balanced: false}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}

	empty := New[int]().Stats()
	if empty != (Stats{Height: -1, MinLeafDepth: -1, Balanced: true}) {
		t.Errorf("Stats() on empty tree = %+v", empty)
	}
}

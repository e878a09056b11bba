// Package demo exercises the tree the way the console walkthrough does:
// build from random values, show it, unbalance it, and rebalance it.
package demo

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/dshills/ordtree/internal/logging"
	"github.com/dshills/ordtree/internal/render"
	"github.com/dshills/ordtree/internal/tree"
)

// MaxRange is the largest usable maxValue; larger ones are clamped so that
// values in [2, maxValue+1] stay representable.
const MaxRange = math.MaxInt - 2

// Default demo parameters.
const (

	DefaultSize           = 20
	DefaultMaxValue       = 100
	DefaultUnbalanceCount = 3
)

// Options configures a demo run.
type Options struct {
	// Size is how many random values to draw when Values is empty.
	Size int

	// MaxValue bounds random values to [2, MaxValue+1].
	MaxValue int

	// UnbalanceCount is how many new values Unbalance adds.
	UnbalanceCount int

	// Seed seeds the random source. Zero means time-based.
	Seed int64

	// Values, if set, replaces the random starting values.
	Values []int
}

// DefaultOptions returns the standard demo parameters.
func DefaultOptions() Options {
	return Options{
		Size:           DefaultSize,
		MaxValue:       DefaultMaxValue,
		UnbalanceCount: DefaultUnbalanceCount,
	}
}

// NewRand returns a random source for seed, or a time-seeded one for zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomValues returns size random values in [2, maxValue+1].
// Duplicates are likely and are left for Build to remove.
func RandomValues(rng *rand.Rand, size, maxValue int) []int {
	maxValue = clampRange(maxValue)
	values := make([]int, size)
	for i := range values {
		values[i] = rng.Intn(maxValue) + 2
	}
	return values
}

// Unbalance inserts count random values in [2, maxValue+1] that are not
// already in t and returns them in insertion order. If the range runs out of
// free values it stops early.
func Unbalance(t *tree.Tree[int], rng *rand.Rand, count, maxValue int) []int {
	maxValue = clampRange(maxValue)

	taken := 0
	for v := range t.All(tree.InOrder) {
		if v > maxValue+1 {
			break
		}
		if v >= 2 {
			taken++
		}
	}
	count = max(0, min(count, maxValue-taken))

	added := make([]int, 0, count)
	for len(added) < count {
		v := rng.Intn(maxValue) + 2
		if t.Contains(v) {
			continue
		}
		if err := t.Insert(v); err == nil {
			added = append(added, v)
		}
	}
	return added
}

// Run performs the walkthrough and writes it to w.
func Run(w io.Writer, opts Options, log *logging.Logger) error {
	if log == nil {
		log = logging.NullLogger
	}
	rng := NewRand(opts.Seed)

	values := opts.Values
	if len(values) == 0 {
		values = RandomValues(rng, opts.Size, opts.MaxValue)
	}
	log.Debug("building tree from %d values", len(values))

	p := &printer{w: w}
	p.println("Creating new tree...")
	t := tree.Build(values)
	p.tree(t)
	p.traversals(t)

	p.println("Unbalancing tree...")
	added := Unbalance(t, rng, opts.UnbalanceCount, opts.MaxValue)
	for _, v := range added {
		p.printf("Adding %d\n", v)
	}
	log.WithField("added", added).Info("unbalanced tree")
	p.tree(t)

	p.println("Rebalancing tree...")
	t.ReBalance()
	log.Info("rebalanced tree to height %d", t.TreeHeight())
	p.tree(t)
	p.traversals(t)

	return p.err
}

// clampRange limits maxValue to [1, MaxRange].
func clampRange(maxValue int) int {
	return max(1, min(maxValue, MaxRange))
}

// printer writes demo output and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

func (p *printer) tree(t *tree.Tree[int]) {
	if p.err != nil {
		return
	}
	p.err = render.Fprint(p.w, t.Root())
	p.printf("Balanced? %t\n", t.IsBalanced())
}

func (p *printer) traversals(t *tree.Tree[int]) {
	p.printf("Level Order: %v\n", t.LevelOrder())
	p.printf("Pre-Order: %v\n", t.PreOrder())
	p.printf("In-Order: %v\n", t.InOrder())
	p.printf("Post-Order: %v\n", t.PostOrder())
}

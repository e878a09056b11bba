package tree

import (
	"slices"
	"testing"
)

// FuzzBuild tests construction from arbitrary byte sequences.
func FuzzBuild(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{7, 3, 3, 9, 1})
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte{255, 0, 255, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		tr := Build(data)

		want := slices.Clone(data)
		slices.Sort(want)
		want = slices.Compact(want)

		if got := tr.InOrder(); !slices.Equal(got, want) {
			t.Errorf("InOrder() = %v, want %v", got, want)
		}
		if !tr.IsBalanced() {
			t.Error("Build() result not balanced")
		}
		checkInvariant(t, tr)
	})
}

// FuzzInsertDelete interprets each byte pair as an operation and value and
// checks the tree against a sorted reference slice.
func FuzzInsertDelete(f *testing.F) {
	f.Add([]byte{0, 5, 0, 3, 0, 8, 1, 5})
	f.Add([]byte{0, 1, 0, 2, 0, 3, 0, 4, 1, 2, 2, 0})
	f.Add([]byte{1, 9})

	f.Fuzz(func(t *testing.T, ops []byte) {
		tr := New[byte]()
		var ref []byte

		for i := 0; i+1 < len(ops); i += 2 {
			op, v := ops[i]%3, ops[i+1]
			idx, found := slices.BinarySearch(ref, v)

			switch op {
			case 0:
				err := tr.Insert(v)
				if found && err == nil {
					t.Fatalf("Insert(%d) of present value succeeded", v)
				}
				if !found {
					if err != nil {
						t.Fatalf("Insert(%d) error = %v", v, err)
					}
					ref = slices.Insert(ref, idx, v)
				}
			case 1:
				if removed := tr.Delete(v); removed != found {
					t.Fatalf("Delete(%d) = %v, want %v", v, removed, found)
				}
				if found {
					ref = slices.Delete(ref, idx, idx+1)
				}
			case 2:
				tr.ReBalance()
				if !tr.IsBalanced() {
					t.Fatal("not balanced after ReBalance()")
				}
			}

			if tr.Contains(v) != slices.Contains(ref, v) {
				t.Fatalf("Contains(%d) disagrees with reference", v)
			}
			if tr.Len() != len(ref) {
				t.Fatalf("Len() = %d, want %d", tr.Len(), len(ref))
			}
		}

		if got := tr.InOrder(); !slices.Equal(got, ref) {
			t.Errorf("InOrder() = %v, want %v", got, ref)
		}
		checkInvariant(t, tr)
	})
}

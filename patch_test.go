package patchepi

import "testing"

func TestPaddedPatch_TwoColumnSplit(t *testing.T) {
	partition := Partition{X: []int{5}}
	gridSize := Point{10, 5}

	padded, owned, err := PaddedPatch(0, partition, gridSize, 4)
	if err != nil {
		t.Fatalf("unexpected error for patch 0: %s", err)
	}
	wantOwned := NewRectangle(Point{0, 0}, Point{5, 5})
	wantPadded := NewRectangle(Point{0, 0}, Point{9, 5})
	if owned != wantOwned {
		t.Errorf("patch 0 owned: expected %s, got %s", wantOwned, owned)
	}
	if padded != wantPadded {
		t.Errorf("patch 0 padded: expected %s, got %s", wantPadded, padded)
	}

	padded, owned, err = PaddedPatch(1, partition, gridSize, 4)
	if err != nil {
		t.Fatalf("unexpected error for patch 1: %s", err)
	}
	wantOwned = NewRectangle(Point{5, 0}, Point{5, 5})
	wantPadded = NewRectangle(Point{1, 0}, Point{9, 5})
	if owned != wantOwned {
		t.Errorf("patch 1 owned: expected %s, got %s", wantOwned, owned)
	}
	if padded != wantPadded {
		t.Errorf("patch 1 padded: expected %s, got %s", wantPadded, padded)
	}
}

func TestPaddedPatch_CenterOfThreeByThree(t *testing.T) {
	partition := Partition{X: []int{5, 10}, Y: []int{5, 10}}
	gridSize := Point{15, 15}

	padded, owned, err := PaddedPatch(4, partition, gridSize, 3)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	wantOwned := NewRectangle(Point{5, 5}, Point{5, 5})
	wantPadded := NewRectangle(Point{2, 2}, Point{11, 11})
	if owned != wantOwned {
		t.Errorf("owned: expected %s, got %s", wantOwned, owned)
	}
	if padded != wantPadded {
		t.Errorf("padded: expected %s, got %s", wantPadded, padded)
	}
}

func TestPaddedPatch_CornerExtendsTwoSides(t *testing.T) {
	partition := Partition{X: []int{5, 10}, Y: []int{5, 10}}
	gridSize := Point{15, 15}

	padded, owned, err := PaddedPatch(0, partition, gridSize, 3)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// Patch 0 is the top-left corner: only the right and bottom sides are
	// interior, so only those two sides may extend.
	if padded.Left() != owned.Left() || padded.Top() != owned.Top() {
		t.Errorf("corner patch must not extend on its boundary sides: owned=%s padded=%s", owned, padded)
	}
	if padded.Right() == owned.Right() || padded.Bottom() == owned.Bottom() {
		t.Errorf("corner patch must extend on its two interior sides: owned=%s padded=%s", owned, padded)
	}
}

func TestPaddedPatch_OutOfRange(t *testing.T) {
	partition := Partition{X: []int{5}}
	gridSize := Point{10, 5}
	_, _, err := PaddedPatch(2, partition, gridSize, 4)
	if err == nil {
		t.Fatal("expected OutOfRange error for patch id beyond patch count")
	}
	if _, ok := err.(*OutOfRange); !ok {
		t.Errorf("expected *OutOfRange, got %T", err)
	}
}

func TestPartitionCoverage(t *testing.T) {
	partition := Partition{X: []int{5, 10}, Y: []int{5, 10}}
	gridSize := Point{15, 15}

	owned := make([]Rectangle, partition.PatchCount())
	for id := range owned {
		_, o, err := PaddedPatch(id, partition, gridSize, 3)
		if err != nil {
			t.Fatalf("unexpected error for patch %d: %s", id, err)
		}
		owned[id] = o
	}

	for x := 0; x < gridSize.X; x++ {
		for y := 0; y < gridSize.Y; y++ {
			p := Point{x, y}
			count := 0
			for _, o := range owned {
				if o.Contains(p) {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("point %s is contained by %d owned rectangles, want 1", p, count)
			}
		}
	}
}

package patchepi

// PaddedPatch computes the owned and padded rectangles for patchID given
// the scenario's partition and grid size (component C1 of the driver).
// Patches are indexed row-major: patchID = row*columns + col.
//
// The owned rectangle is the tile this patch alone produces output for.
// The padded rectangle extends the owned rectangle outward by up to
// padding cells on each side that is not a grid boundary, clipped so it
// never crosses the grid edge.
func PaddedPatch(patchID int, partition Partition, gridSize Point, padding int) (padded, owned Rectangle, err error) {
	columns := partition.Columns()
	rows := partition.Rows()
	if patchID < 0 || patchID >= columns*rows {
		return Rectangle{}, Rectangle{}, &OutOfRange{PatchID: patchID, PatchCount: columns * rows}
	}

	xs := splitsWithBounds(partition.X, gridSize.X)
	ys := splitsWithBounds(partition.Y, gridSize.Y)

	col := patchID % columns
	row := patchID / columns

	ownedOrigin := Point{xs[col], ys[row]}
	ownedSize := Point{xs[col+1] - xs[col], ys[row+1] - ys[row]}
	owned = NewRectangle(ownedOrigin, ownedSize)

	paddedOrigin := ownedOrigin
	paddedSize := ownedSize

	isTopRow := row == 0
	isBottomRow := row == rows-1
	isLeftEdge := col == 0
	isRightEdge := col == columns-1

	if !isTopRow {
		topSpace := ownedOrigin.Y - ys[0]
		extend := min(padding, topSpace)
		paddedOrigin.Y -= extend
		paddedSize.Y += extend
	}
	if !isBottomRow {
		bottomSpace := ys[len(ys)-1] - (ownedOrigin.Y + ownedSize.Y)
		extend := min(padding, bottomSpace)
		paddedSize.Y += extend
	}
	if !isLeftEdge {
		leftSpace := ownedOrigin.X - xs[0]
		extend := min(padding, leftSpace)
		paddedOrigin.X -= extend
		paddedSize.X += extend
	}
	if !isRightEdge {
		rightSpace := xs[len(xs)-1] - (ownedOrigin.X + ownedSize.X)
		extend := min(padding, rightSpace)
		paddedSize.X += extend
	}

	padded = NewRectangle(paddedOrigin, paddedSize)
	return padded, owned, nil
}

// splitsWithBounds returns the interior split coordinates with the grid's
// own edges (0 and bound) prepended/appended, giving len(splits)+2 split
// points that bound len(splits)+1 patches along one axis.
func splitsWithBounds(splits []int, bound int) []int {
	out := make([]int, 0, len(splits)+2)
	out = append(out, 0)
	out = append(out, splits...)
	out = append(out, bound)
	return out
}

package patchepi

// MayPropagateFrom decides whether infection can travel from the source
// rectangle to the overlap rectangle given the scenario's obstacle set.
// It resolves the symmetry ambiguity noted in spec.md (DESIGN.md open
// question 1) by construction: it only asks whether some obstacle
// completely seals the gap between the two rectangles, a question that
// does not care which rectangle is labeled "source" and which is
// "overlap".
//
// The two rectangles are always axis-aligned neighbors produced by the
// neighbor-graph builder (source is a patch's owned rectangle, overlap is
// the intersection of that patch's padded rectangle with a neighbor's
// owned rectangle), so the gap between them, if any, is a thin strip along
// a single axis. An obstacle blocks propagation only if it spans that whole
// strip -- a corner obstacle that merely touches the boundary does not.
func MayPropagateFrom(scenario *Scenario, overlap, source Rectangle) bool {
	if overlap.Empty() || source.Empty() {
		return false
	}
	if len(scenario.Obstacles) == 0 {
		return true
	}

	bridge := bridgeRectangle(source, overlap)
	for _, obstacle := range scenario.Obstacles {
		if seals(obstacle, bridge) {
			return false
		}
	}
	return true
}

// bridgeRectangle returns the channel any infection propagating from
// source to overlap must cross: the thin strip of cells that lies between
// the two rectangles' facing edges, spanning the range they share on the
// perpendicular axis. If the rectangles already overlap, there is no gap
// to seal and the empty rectangle is returned.
func bridgeRectangle(source, overlap Rectangle) Rectangle {
	if xLo, xHi, ok := axisGap(source.Left(), source.Right(), overlap.Left(), overlap.Right()); ok {
		top := max(source.Top(), overlap.Top())
		bottom := min(source.Bottom(), overlap.Bottom())
		if bottom < top {
			bottom = top
		}
		return Rectangle{Origin: Point{xLo, top}, Size: Point{xHi - xLo, bottom - top}}
	}
	if yLo, yHi, ok := axisGap(source.Top(), source.Bottom(), overlap.Top(), overlap.Bottom()); ok {
		left := max(source.Left(), overlap.Left())
		right := min(source.Right(), overlap.Right())
		if right < left {
			right = left
		}
		return Rectangle{Origin: Point{left, yLo}, Size: Point{right - left, yHi - yLo}}
	}
	return Rectangle{}
}

// axisGap reports the gap between two intervals [aLo,aHi) and [bLo,bHi)
// when they are disjoint and ordered along this axis, i.e. one interval
// lies entirely at or before the start of the other.
func axisGap(aLo, aHi, bLo, bHi int) (lo, hi int, ok bool) {
	if aHi <= bLo {
		return aHi, bLo, true
	}
	if bHi <= aLo {
		return bHi, aLo, true
	}
	return 0, 0, false
}

// seals reports whether obstacle completely covers bridge, i.e. nothing
// propagating through bridge could avoid passing through obstacle.
func seals(obstacle, bridge Rectangle) bool {
	return obstacle.Left() <= bridge.Left() && obstacle.Right() >= bridge.Right() &&
		obstacle.Top() <= bridge.Top() && obstacle.Bottom() >= bridge.Bottom()
}

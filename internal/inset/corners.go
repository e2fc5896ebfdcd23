package inset

import (
	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// cornerThresholdRadians is the 45-degree turn magnitude a vertex must
// reach to count as a corner (§4.4).
const cornerThresholdRadians = 45.0 * (3.141592653589793 / 180.0)

// cornersSimp finds the corners of an already-simplified ring (§4.4.1): a
// vertex where the ring turns by at least 45 degrees towards its own
// interior. ring must satisfy ring[0] == ring[len(ring)-1] and have at
// least 3 unique vertices (4 points with the closing duplicate); violating
// this is a Bug, not a recoverable error, since
// only this package's own callers construct the ring passed in.
//
// A convex corner turns towards the interior, and by the Gauss-Bonnet
// argument (turning angles over a simple ring sum to +-360 degrees) that
// means a positive (leftward) turn on a CCW ring but a negative
// (rightward) turn on a CW ring. cornersSimp reads the ring's own winding
// so the same 45-degree test finds convex corners on outer rings (CCW)
// and hole rings (CW) alike.
func cornersSimp(ring geo.PlanarRing) []int {
	n := ring.NumVertices()
	if n < 3 {
		panic(ferrors.Errorf(ferrors.Bug, "cornersSimp: ring has %d unique vertices, need at least 3", n))
	}

	sign := 1.0
	if ring.Orientation() == geo.CW {
		sign = -1.0
	}

	var out []int
	prev := ring[0].Sub(ring[n-1])
	for i := 0; i < n; i++ {
		curr := ring[i+1].Sub(ring[i])
		theta := float64(prev.AngleTo(curr))
		if theta*sign >= cornerThresholdRadians {
			out = append(out, i)
		}
		prev = curr
	}
	return out
}

// mapCorners maps corner indices found on a simplified ring back onto the
// original ring (§4.4.2): for each simplified corner point, scan forward
// from the last match for the nearest original vertex, advancing the
// start cursor after every match so two simplified corners never claim
// the same original vertex. This is the "safe" behaviour §9's open
// question (a) settles on, rather than the source's apparent cursor reset
// to min(0, best_i+1).
func mapCorners(orig, simp geo.PlanarRing, simpCorners []int) []int {
	n := orig.NumVertices()
	start := 0
	seen := make(map[int]bool)
	var out []int

	for _, sc := range simpCorners {
		target := simp.Vertex(sc)
		bestIdx := -1
		bestDist := -1.0
		for i := 0; i < n; i++ {
			idx := (start + i) % n
			d := orig.Vertex(idx).DistanceSquared(target)
			if bestIdx == -1 || d < bestDist || (d == bestDist && idx < bestIdx) {
				bestIdx = idx
				bestDist = d
			}
		}
		if bestIdx == -1 || seen[bestIdx] {
			continue
		}
		seen[bestIdx] = true
		out = append(out, bestIdx)
		start = (bestIdx + 1) % n
	}

	sortInts(out)
	return dedupSortedInts(out)
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func dedupSortedInts(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Corners finds the corners of ring (§4.4.3): simplify at
// CornerDetectionTolerance, find the corners of the simplified ring, and
// map them back onto the original.
func Corners(svc *geos.Service, ring geo.PlanarRing) ([]int, error) {
	simp, err := SimplifyRing(svc, ring, CornerDetectionTolerance)
	if err != nil {
		return nil, err
	}
	if simp.NumVertices() < 3 {
		return nil, nil
	}
	simpCorners := cornersSimp(simp)
	return mapCorners(ring, simp, simpCorners), nil
}

// Adjust normalizes ring and its corner list so the ring begins at a
// corner and has at least two corners (§4.4.4). It returns the possibly
// rotated ring and the renumbered, adjusted corner list.
func Adjust(ring geo.PlanarRing, corners []int) (geo.PlanarRing, geo.CornerList, error) {
	n := ring.NumVertices()
	if n < 1 {
		return nil, nil, ferrors.New(ferrors.Bug, "Adjust: ring has no vertices")
	}
	verts := append(geo.PlanarRing{}, ring[:n]...) // drop the closing duplicate

	cs := append([]int{}, corners...)
	if len(cs) == 0 {
		cs = []int{0}
	}

	if cs[0] != 0 {
		forwardShift := cs[0]
		backwardShift := cs[len(cs)-1] - n // negative

		// On a tie, prefer the forward shift: it never drops a corner.
		var shift int
		dropLast := false
		if -backwardShift < forwardShift {
			shift = backwardShift
			dropLast = true
		} else {
			shift = forwardShift
		}

		verts = rotate(verts, shift)

		renumbered := make([]int, 0, len(cs))
		for i, c := range cs {
			if dropLast && i == len(cs)-1 {
				continue
			}
			idx := ((c-shift)%n + n) % n
			renumbered = append(renumbered, idx)
		}
		if dropLast {
			renumbered = append([]int{0}, renumbered...)
		}
		cs = renumbered
		sortInts(cs)
		cs = dedupSortedInts(cs)
	}

	if len(cs) < 2 {
		farthest := 0
		farthestDist := -1.0
		for i := 1; i < n; i++ {
			d := verts[i].DistanceSquared(verts[0])
			if d > farthestDist {
				farthestDist = d
				farthest = i
			}
		}
		cs = append(cs, farthest)
		sortInts(cs)
		cs = dedupSortedInts(cs)
	}

	closed := append(verts, verts[0])

	if cs[0] != 0 || len(cs) < 2 {
		return nil, nil, ferrors.New(ferrors.Bug, "Adjust: postcondition violated")
	}
	for i := 1; i < len(cs); i++ {
		if cs[i] <= cs[i-1] {
			return nil, nil, ferrors.New(ferrors.Bug, "Adjust: corner list not strictly increasing")
		}
	}
	for _, c := range cs {
		if c < 0 || c >= n {
			return nil, nil, ferrors.Errorf(ferrors.Bug, "Adjust: corner index %d out of range [0,%d)", c, n)
		}
	}

	return closed, geo.CornerList(cs), nil
}

// rotate returns verts shifted so that the element currently at index
// ((shift%n)+n)%n becomes index 0, preserving order.
func rotate(verts geo.PlanarRing, shift int) geo.PlanarRing {
	n := len(verts)
	if n == 0 {
		return verts
	}
	start := ((shift % n) + n) % n
	out := make(geo.PlanarRing, n)
	for i := 0; i < n; i++ {
		out[i] = verts[(start+i)%n]
	}
	return out
}

// PolygonCorners finds and adjusts the corner lists of every ring of a
// polygon: the outer ring first, then each hole in order (§4.4.4's
// `corners(polygon)`). It returns the (possibly rotated) rings alongside
// their adjusted corner lists, since Adjust may rotate a ring's starting
// vertex.
func PolygonCorners(svc *geos.Service, poly geo.PlanarPolygon) ([]geo.PlanarRing, []geo.CornerList, error) {
	rings := poly.Rings()
	outRings := make([]geo.PlanarRing, len(rings))
	outCorners := make([]geo.CornerList, len(rings))

	for i, r := range rings {
		cs, err := Corners(svc, r)
		if err != nil {
			return nil, nil, err
		}
		adjustedRing, adjustedCorners, err := Adjust(r, cs)
		if err != nil {
			return nil, nil, err
		}
		outRings[i] = adjustedRing
		outCorners[i] = adjustedCorners
	}

	return outRings, outCorners, nil
}

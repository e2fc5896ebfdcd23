package geo

// Ring is an ordered sequence of points forming a simple closed ring:
// First() == Last(), and it holds at least 4 points (§3). It is generic
// over the point type so the same shape works for geodetic (LatLon) and
// planar (PlanarPoint) rings — the capability-interface alternative
// described in §9 would let algorithms read/write coordinates through an
// interface, but since every ring algorithm in this module either stays
// entirely in the planar frame or crosses it exactly once (at the
// projector boundary), converting to a canonical point type there is
// simpler and just as general.
type Ring[P any] []P

// NumVertices returns the number of unique vertices, i.e. len(r)-1 for a
// properly closed ring.
func (r Ring[P]) NumVertices() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Closed reports whether the ring's first and last points are present and
// (per the caller's own equality notion) expected to coincide; this module
// treats "closed" purely structurally (len(r) >= 2) since point equality
// depends on the instantiated P.
func (r Ring[P]) Closed() bool { return len(r) >= 2 }

// Vertex returns the i'th unique vertex, wrapping at NumVertices via
// modular arithmetic so callers can index past the closing duplicate.
func (r Ring[P]) Vertex(i int) P {
	n := r.NumVertices()
	return r[((i%n)+n)%n]
}

// Orientation is the winding direction of a planar ring.
type Orientation int

const (
	// Degenerate marks a ring with zero signed area.
	Degenerate Orientation = 0
	// CCW is counter-clockwise winding — required of an outer ring (§3).
	CCW Orientation = 1
	// CW is clockwise winding — required of a hole ring (§3).
	CW Orientation = -1
)

// Orientation returns the winding direction of a planar ring by signed
// area, offset near the origin to help with floating-point roundoff on
// rings far from (0,0) — the same technique orb.Ring.Orientation uses.
func (r PlanarRing) Orientation() Orientation {
	if len(r) < 2 {
		return Degenerate
	}
	var area float64
	ox, oy := float64(r[0].X), float64(r[0].Y)
	for i := 1; i < len(r)-1; i++ {
		xi, yi := float64(r[i].X)-ox, float64(r[i].Y)-oy
		xj, yj := float64(r[i+1].X)-ox, float64(r[i+1].Y)-oy
		area += xi*yj - xj*yi
	}
	switch {
	case area > 0:
		return CCW
	case area < 0:
		return CW
	default:
		return Degenerate
	}
}

// Reverse returns a new ring with the vertex order reversed, preserving
// closure (first == last).
func (r PlanarRing) Reverse() PlanarRing {
	out := make(PlanarRing, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// EnsureOrientation returns r as-is if its winding already matches want,
// or reversed otherwise. This is the "wrong orientation... corrected"
// handling §4.2/§4.3 call for: ring orientation is never treated as a
// fatal validity failure in this module, it is always just fixed up.
func (r PlanarRing) EnsureOrientation(want Orientation) PlanarRing {
	if want == Degenerate || r.Orientation() == want {
		return r
	}
	return r.Reverse()
}

// Normalize corrects outer-ring and hole orientation per §3 (outer CCW,
// inners CW).
func (p PlanarPolygon) Normalize() PlanarPolygon {
	out := PlanarPolygon{Outer: p.Outer.EnsureOrientation(CCW)}
	if len(p.Inners) > 0 {
		out.Inners = make([]PlanarRing, len(p.Inners))
		for i, inner := range p.Inners {
			out.Inners[i] = inner.EnsureOrientation(CW)
		}
	}
	return out
}

// Polygon is an outer ring plus zero or more inner rings (holes) (§3).
type Polygon[P any] struct {
	Outer  Ring[P]
	Inners []Ring[P]
}

// Rings returns the outer ring followed by every inner ring, the order
// corners(polygon) in §4.4.4 walks.
func (p Polygon[P]) Rings() []Ring[P] {
	out := make([]Ring[P], 0, 1+len(p.Inners))
	out = append(out, p.Outer)
	out = append(out, p.Inners...)
	return out
}

// MultiPolygon is a set of polygons with disjoint interiors (§3).
type MultiPolygon[P any] struct {
	Polygons []Polygon[P]
}

// Empty reports whether the multipolygon has no polygons — the
// representation §4.2 and §4.6 use for "buffer collapsed everything."
func (m MultiPolygon[P]) Empty() bool { return len(m.Polygons) == 0 }

type (
	// GeoRing is a ring of geodetic points.
	GeoRing = Ring[LatLon]
	// PlanarRing is a ring of planar points.
	PlanarRing = Ring[PlanarPoint]
	// GeoPolygon is a polygon of geodetic rings.
	GeoPolygon = Polygon[LatLon]
	// PlanarPolygon is a polygon of planar rings.
	PlanarPolygon = Polygon[PlanarPoint]
	// GeoMultiPolygon is a multipolygon of geodetic polygons.
	GeoMultiPolygon = MultiPolygon[LatLon]
	// PlanarMultiPolygon is a multipolygon of planar polygons.
	PlanarMultiPolygon = MultiPolygon[PlanarPoint]
)

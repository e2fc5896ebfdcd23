package geo

// Path is an open, ordered sequence of points with at least two vertices
// (§3) — the shape a swath takes once extracted from a ring.
type Path[P any] []P

// MultiPath is a set of Paths (§3) — the shape one ring's worth of swaths
// takes, and what BoundarySwaths (§4.6) returns one of per ring.
type MultiPath[P any] []Path[P]

type (
	// GeoPath is a path of geodetic points.
	GeoPath = Path[LatLon]
	// PlanarPath is a path of planar points.
	PlanarPath = Path[PlanarPoint]
	// GeoMultiPath is a multipath of geodetic points.
	GeoMultiPath = MultiPath[LatLon]
	// PlanarMultiPath is a multipath of planar points.
	PlanarMultiPath = MultiPath[PlanarPoint]
)

package geo

import "math"

// LatLon is a geodetic point: latitude in [-90, 90] degrees, longitude in
// (-180, 180] degrees (§3).
type LatLon struct {
	Lat Angle
	Lon Angle
}

// PlanarPoint is a point in a local azimuthal-equidistant planar frame,
// in metres (§3).
type PlanarPoint struct {
	X Length
	Y Length
}

// Sub returns the vector p - q.
func (p PlanarPoint) Sub(q PlanarPoint) PlanarVector {
	return PlanarVector{DX: p.X - q.X, DY: p.Y - q.Y}
}

// DistanceSquared returns the squared Euclidean distance between p and q,
// in square metres. Used by map_corners (§4.4.2), where only relative
// ordering of distances matters.
func (p PlanarPoint) DistanceSquared(q PlanarPoint) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between p and q in metres.
func (p PlanarPoint) Distance(q PlanarPoint) Length {
	return Length(math.Sqrt(p.DistanceSquared(q)))
}

// PlanarVector is the difference of two PlanarPoints: a direction and
// magnitude in metres, used by the corner detector's cross/dot products.
type PlanarVector struct {
	DX Length
	DY Length
}

// Cross returns the 2-D scalar cross product v × w, in square metres.
func (v PlanarVector) Cross(w PlanarVector) float64 {
	return float64(v.DX)*float64(w.DY) - float64(v.DY)*float64(w.DX)
}

// Dot returns the dot product v · w, in square metres.
func (v PlanarVector) Dot(w PlanarVector) float64 {
	return float64(v.DX)*float64(w.DX) + float64(v.DY)*float64(w.DY)
}

// AngleTo returns the signed angle from v to w: atan2(cross, dot). Both
// cross and dot are area-valued (length x length), so their ratio is the
// dimensionless tangent of the angle between the vectors — this is how
// §9's "units" note expresses an angle-from-lengths computation safely.
func (v PlanarVector) AngleTo(w PlanarVector) Angle {
	return Angle(math.Atan2(v.Cross(w), v.Dot(w)))
}

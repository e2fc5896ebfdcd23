package inset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/geo"
)

// squareRing returns a CCW square ring with the given side length, origin at
// (0,0).
func squareRing(side float64) geo.PlanarRing {
	return mustPlanarRing([][2]float64{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	})
}

// TestBoundarySwathsPlanarUnitSquare is scenario S1: a 100m square insets
// to a 90m square with no rotation needed, one MultiPath of 4 swaths.
func TestBoundarySwathsPlanarUnitSquare(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	poly := geo.PlanarPolygon{Outer: squareRing(100)}
	polys, err := BoundarySwathsPlanar(svc, poly, 5, 0.1)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	require.Empty(t, polys[0].Holes)
	require.Len(t, polys[0].Outer, 4)

	for _, swath := range polys[0].Outer {
		assert.GreaterOrEqual(t, len(swath), 2)
	}

	want := mustPlanarRing([][2]float64{{5, 5}, {95, 5}, {95, 95}, {5, 95}, {5, 5}})
	var covered geo.PlanarRing
	for _, s := range polys[0].Outer {
		pts := geo.PlanarRing(s)
		if len(covered) > 0 && covered[len(covered)-1] == pts[0] {
			pts = pts[1:]
		}
		covered = append(covered, pts...)
	}
	if len(covered) > 0 && covered[len(covered)-1] == covered[0] {
		covered = covered[:len(covered)-1]
	}
	require.Len(t, covered, 4)
	for _, v := range covered {
		assertCornerClose(t, want, v)
	}
}

// assertCornerClose checks that v is close to one of ring's vertices,
// tolerant of which vertex the pipeline chose as the rotation start.
func assertCornerClose(t *testing.T, ring geo.PlanarRing, v geo.PlanarPoint) {
	t.Helper()
	const eps = 1e-6
	for i := 0; i < ring.NumVertices(); i++ {
		c := ring.Vertex(i)
		if v.Distance(c) < eps {
			return
		}
	}
	t.Fatalf("vertex %+v is not close to any corner of %v", v, ring)
}

// TestBoundarySwathsPlanarNarrowRectangleCollapses is scenario S2: an
// 8m-wide rectangle insets to nothing at a 5m offset (2*5 > 8).
func TestBoundarySwathsPlanarNarrowRectangleCollapses(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	ring := mustPlanarRing([][2]float64{{0, 0}, {200, 0}, {200, 8}, {0, 8}, {0, 0}})
	poly := geo.PlanarPolygon{Outer: ring}

	polys, err := BoundarySwathsPlanar(svc, poly, 5, 0.1)
	require.NoError(t, err)
	assert.Empty(t, polys)
}

// TestBoundarySwathsPlanarSquareWithHole is scenario S3: a square with a
// centred square hole produces two MultiPaths, each of 4 swaths.
func TestBoundarySwathsPlanarSquareWithHole(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	outer := mustPlanarRing([][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}})
	// The hole ring below already winds CW, as the data model wants for
	// holes; Normalize inside Buffer would correct either winding.
	hole := mustPlanarRing([][2]float64{{40, 40}, {40, 60}, {60, 60}, {60, 40}, {40, 40}})
	poly := geo.PlanarPolygon{Outer: outer, Inners: []geo.PlanarRing{hole}}

	polys, err := BoundarySwathsPlanar(svc, poly, 2, 0.1)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	assert.Len(t, polys[0].Outer, 4)
	require.Len(t, polys[0].Holes, 1)
	assert.Len(t, polys[0].Holes[0], 4)
}

// TestBoundarySwathsPlanarPentagon is scenario S4: a regular pentagon
// produces one MultiPath of 5 swaths, one per vertex.
func TestBoundarySwathsPlanarPentagon(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	const r = 50.0
	const n = 5
	pts := make([][2]float64, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{r * math.Cos(theta), r * math.Sin(theta)}
	}
	pts[n] = pts[0]
	poly := geo.PlanarPolygon{Outer: mustPlanarRing(pts)}

	polys, err := BoundarySwathsPlanar(svc, poly, 2, 0.1)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	assert.Len(t, polys[0].Outer, n)
}

// metresPerDegree returns the WGS-84 length in metres of one degree of
// latitude and of one degree of longitude at latDeg.
func metresPerDegree(latDeg float64) (lat, lon float64) {
	const a, e2 = 6378137.0, 0.00669437999014
	phi := latDeg * math.Pi / 180
	w := math.Sqrt(1 - e2*math.Sin(phi)*math.Sin(phi))
	lat = a * (1 - e2) / (w * w * w) * math.Pi / 180
	lon = a * math.Cos(phi) / w * math.Pi / 180
	return lat, lon
}

// geoSquareRing returns a geodetic square ring centred at (latDeg,
// lonDeg), sideMeters on a side, converting metres to degrees with the
// WGS-84 degree lengths at latDeg (accurate to about a millimetre over a
// few hundred metres).
func geoSquareRing(latDeg, lonDeg, sideMeters float64) geo.GeoRing {
	mLat, mLon := metresPerDegree(latDeg)
	dLat := (sideMeters / 2) / mLat
	dLon := (sideMeters / 2) / mLon
	return geo.GeoRing{
		{Lat: geo.NewDegrees(latDeg - dLat), Lon: geo.NewDegrees(lonDeg - dLon)},
		{Lat: geo.NewDegrees(latDeg + dLat), Lon: geo.NewDegrees(lonDeg - dLon)},
		{Lat: geo.NewDegrees(latDeg + dLat), Lon: geo.NewDegrees(lonDeg + dLon)},
		{Lat: geo.NewDegrees(latDeg - dLat), Lon: geo.NewDegrees(lonDeg + dLon)},
		{Lat: geo.NewDegrees(latDeg - dLat), Lon: geo.NewDegrees(lonDeg - dLon)},
	}
}

// TestBoundarySwathsGeoNear45NorthRoundTrips is scenario S5: a 100m
// square centred at (45N, 0E), offset 5m, round-tripped through the
// local projection. Every output vertex must land within the field's
// 100x100m bounding box, and the inset square's edges must be 90m.
func TestBoundarySwathsGeoNear45NorthRoundTrips(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	const lat, lon = 45.0, 0.0
	poly := geo.GeoPolygon{Outer: geoSquareRing(lat, lon, 100)}

	polys, err := BoundarySwaths(svc, poly, 5, 0.1)
	require.NoError(t, err)
	require.Len(t, polys, 1)
	require.Empty(t, polys[0].Holes)
	require.Len(t, polys[0].Outer, 4)

	center := geo.LatLon{Lat: geo.NewDegrees(lat), Lon: geo.NewDegrees(lon)}

	var covered geo.GeoRing
	for _, s := range polys[0].Outer {
		pts := geo.GeoRing(s)
		if len(covered) > 0 && covered[len(covered)-1] == pts[0] {
			pts = pts[1:]
		}
		covered = append(covered, pts...)
	}
	if len(covered) > 0 && covered[len(covered)-1] == covered[0] {
		covered = covered[:len(covered)-1]
	}
	require.Len(t, covered, 4)

	mLat, mLon := metresPerDegree(lat)
	toMetres := func(v geo.LatLon) (x, y float64) {
		y = (v.Lat.Degrees() - center.Lat.Degrees()) * mLat
		x = (v.Lon.Degrees() - center.Lon.Degrees()) * mLon
		return x, y
	}

	for _, v := range covered {
		x, y := toMetres(v)
		assert.LessOrEqual(t, math.Abs(x), 50.0+1e-3, "vertex should stay within the field's 100x100m bounding box")
		assert.LessOrEqual(t, math.Abs(y), 50.0+1e-3, "vertex should stay within the field's 100x100m bounding box")
	}

	x0, y0 := toMetres(covered[0])
	x1, y1 := toMetres(covered[1])
	edge := math.Hypot(x1-x0, y1-y0)
	assert.InDelta(t, 90.0, edge, 0.01, "inset square edge length should be 90m +/- 1cm")
}

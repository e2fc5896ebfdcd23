package inset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/geo"
)

// shoelaceArea computes a ring's area via the shoelace formula; rings
// here are always closed (first == last), so the wraparound term is
// zero and can be dropped.
func shoelaceArea(r geo.PlanarRing) float64 {
	var sum float64
	n := r.NumVertices()
	for i := 0; i < n; i++ {
		a := r.Vertex(i)
		b := r.Vertex((i + 1) % n)
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// TestBufferInsetAreaDecreasesMonotonically is property 6: for a convex
// polygon of minimum width w, inset(P, d) area decreases monotonically
// as d grows, for every d tried while the result stays non-empty.
func TestBufferInsetAreaDecreasesMonotonically(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	poly := geo.PlanarPolygon{Outer: squareRing(100)}

	var lastArea float64 = -1
	for _, d := range []geo.Length{10, 20, 30, 40, 49} {
		mp, err := Buffer(svc, poly, d)
		require.NoError(t, err)
		require.Len(t, mp.Polygons, 1, "a square's inset at d=%v should still be one polygon", d)

		area := shoelaceArea(mp.Polygons[0].Outer)
		if lastArea >= 0 {
			assert.Less(t, area, lastArea, "area at d=%v should be smaller than the previous, smaller offset", d)
		}
		lastArea = area
	}
}

// TestBufferInsetCollapsesAtHalfMinWidth is the other half of property 6:
// a 100m-wide square's minimum width is 100m, so inset(P, d) must be
// non-empty for d < 50 and empty for d >= 50.
func TestBufferInsetCollapsesAtHalfMinWidth(t *testing.T) {
	svc, err := geos.NewService()
	require.NoError(t, err)
	defer svc.Close()

	poly := geo.PlanarPolygon{Outer: squareRing(100)}

	mp, err := Buffer(svc, poly, 49)
	require.NoError(t, err)
	assert.False(t, mp.Empty(), "d=49 < w/2=50 should leave a non-empty inset")

	mp, err = Buffer(svc, poly, 50)
	require.NoError(t, err)
	assert.True(t, mp.Empty(), "d=50 == w/2 should collapse the square entirely")
}

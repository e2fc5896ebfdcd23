package inset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isoagro/fieldinset/internal/geo"
)

func TestCornersSimpSquare(t *testing.T) {
	// This CCW square turns left (towards its interior) by 90 degrees at
	// every vertex, well past the 45 degree threshold, so every vertex is a
	// corner.
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	assert.Equal(t, []int{0, 1, 2, 3}, cornersSimp(ring))
}

func TestCornersSimpCollinearVertexIsNotACorner(t *testing.T) {
	// Vertex 1 lies on the straight run from (0,0) to (20,0), so the ring
	// does not turn there and it must not be reported as a corner (the
	// sharp turns at vertices 0 and 2 are corners).
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {20, 0}, {10, 1}, {0, 0}})
	for _, c := range cornersSimp(ring) {
		assert.NotEqual(t, 1, c, "the collinear vertex should not register as a corner")
	}
}

func TestMapCornersAdvancesCursor(t *testing.T) {
	orig := mustPlanarRing([][2]float64{
		{0, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 10}, {5, 10}, {0, 10}, {0, 5}, {0, 0},
	})
	simp := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	mapped := mapCorners(orig, simp, []int{0, 1, 2, 3})
	assert.Equal(t, []int{0, 2, 4, 6}, mapped)
}

package inset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isoagro/fieldinset/internal/geo"
)

func mustPlanarRing(coords [][2]float64) geo.PlanarRing {
	r := make(geo.PlanarRing, len(coords))
	for i, c := range coords {
		r[i] = geo.PlanarPoint{X: geo.Length(c[0]), Y: geo.Length(c[1])}
	}
	return r
}

// TestExtractSwathsCover is property 4 (§8): concatenating the swaths and
// collapsing adjacent duplicate vertices must reproduce ring[0:n) exactly.
func TestExtractSwathsCover(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	corners := geo.CornerList{0, 1, 2, 3}

	swaths, err := ExtractSwaths(ring, corners)
	require.NoError(t, err)
	require.Len(t, swaths, 4)

	var covered geo.PlanarRing
	for _, s := range swaths {
		pts := geo.PlanarRing(s)
		if len(covered) > 0 && covered[len(covered)-1] == pts[0] {
			pts = pts[1:]
		}
		covered = append(covered, pts...)
	}
	// The final swath closes the loop back onto ring[0]; strip that
	// trailing repeat to compare against the unique-vertex sequence.
	if len(covered) > 0 && covered[len(covered)-1] == covered[0] {
		covered = covered[:len(covered)-1]
	}

	assert.Equal(t, ring[:4], covered)
	for i, s := range swaths {
		assert.GreaterOrEqual(t, len(s), 2, "swath %d should have at least 2 vertices", i)
	}
}

func TestExtractSwathsRejectsBadCorners(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	_, err := ExtractSwaths(ring, geo.CornerList{1, 2})
	assert.Error(t, err)

	_, err = ExtractSwaths(ring, geo.CornerList{0})
	assert.Error(t, err)
}

func TestAdjustAlreadyAtCorner(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	adjusted, corners, err := Adjust(ring, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, geo.CornerList{0, 1, 2, 3}, corners)
	assert.Equal(t, ring, adjusted)
}

func TestAdjustRotatesForwardToNearestCorner(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	// Corner 1 is one step from the front and corner 3 is one step from
	// the back; on this tie the forward shift by 1 wins.
	adjusted, corners, err := Adjust(ring, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, corners[0])
	assert.True(t, corners.Valid())
	assert.Equal(t, ring.Vertex(1), adjusted[0])
}

func TestAdjustAddsFarthestCornerWhenOnlyOne(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	_, corners, err := Adjust(ring, []int{0})
	require.NoError(t, err)
	require.Len(t, corners, 2)
	assert.Equal(t, 0, corners[0])
	// The farthest vertex from (0,0) on this 10m square is the diagonal
	// corner, index 2.
	assert.Equal(t, 2, corners[1])
}

func TestAdjustEmptyCornersDefaultsToZero(t *testing.T) {
	ring := mustPlanarRing([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})

	_, corners, err := Adjust(ring, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, corners[0])
	assert.GreaterOrEqual(t, len(corners), 2)
}

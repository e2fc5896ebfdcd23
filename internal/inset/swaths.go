package inset

import (
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// ExtractSwaths partitions ring into open polyline swaths between
// consecutive corners (§4.5). ring must satisfy ring[0] == ring[len-1]
// and corners must satisfy the Adjust postcondition (§4.4.4) — corners[0]
// == 0, strictly increasing, every index < len(ring)-1, at least two
// entries. Adjacent swaths share the corner vertex at their join; the
// last swath wraps from the last corner back through the ring's closing
// vertex to corners[0].
func ExtractSwaths(ring geo.PlanarRing, corners geo.CornerList) (geo.PlanarMultiPath, error) {
	n := ring.NumVertices()
	if len(corners) < 2 || corners[0] != 0 {
		return nil, ferrors.New(ferrors.Bug, "ExtractSwaths: corners violates the Adjust postcondition")
	}
	for i := 1; i < len(corners); i++ {
		if corners[i] <= corners[i-1] {
			return nil, ferrors.New(ferrors.Bug, "ExtractSwaths: corners is not strictly increasing")
		}
	}
	for _, c := range corners {
		if c < 0 || c >= n {
			return nil, ferrors.Errorf(ferrors.Bug, "ExtractSwaths: corner %d out of range [0,%d)", c, n)
		}
	}

	out := make(geo.PlanarMultiPath, 0, len(corners))
	for i := 0; i < len(corners)-1; i++ {
		out = append(out, geo.Path[geo.PlanarPoint](ring[corners[i]:corners[i+1]+1]))
	}
	last := corners[len(corners)-1]
	out = append(out, geo.Path[geo.PlanarPoint](ring[last:n+1]))

	return out, nil
}

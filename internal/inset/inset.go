package inset

import (
	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/geo"
	"github.com/isoagro/fieldinset/internal/projector"
)

// PolygonSwaths groups the swaths produced for one output polygon of the
// inset buffer (§4.6 step 5): the outer ring's swaths, plus one MultiPath
// per hole ring in the order PolygonCorners returns them.
type PolygonSwaths[P any] struct {
	Outer geo.MultiPath[P]
	Holes []geo.MultiPath[P]
}

// PlanarPolygonSwaths and GeoPolygonSwaths are the two instantiations
// BoundarySwathsPlanar and BoundarySwaths return.
type (
	PlanarPolygonSwaths = PolygonSwaths[geo.PlanarPoint]
	GeoPolygonSwaths    = PolygonSwaths[geo.LatLon]
)

// BoundarySwaths composes the projector, buffer, simplifier, corner
// detector, and swath extractor into the end-to-end operation of §4.6:
// given a geographic boundary polygon and an inset offset, produce the
// guidance swaths of the inset contour in geodetic coordinates, one
// PolygonSwaths per polygon the buffer produced. An empty buffer result
// (the polygon collapsed entirely) yields an empty slice, not an error.
func BoundarySwaths(svc *geos.Service, poly geo.GeoPolygon, offset geo.Length, tolerance geo.Length) ([]GeoPolygonSwaths, error) {
	proj, err := projector.New(svc, poly)
	if err != nil {
		return nil, err
	}

	planar, err := proj.ForwardPolygon(poly)
	if err != nil {
		return nil, err
	}

	planarResults, err := BoundarySwathsPlanar(svc, planar, offset, tolerance)
	if err != nil {
		return nil, err
	}

	out := make([]GeoPolygonSwaths, len(planarResults))
	for i, ps := range planarResults {
		outer, err := proj.InverseMultiPath(ps.Outer)
		if err != nil {
			return nil, err
		}
		holes := make([]geo.GeoMultiPath, len(ps.Holes))
		for j, h := range ps.Holes {
			holes[j], err = proj.InverseMultiPath(h)
			if err != nil {
				return nil, err
			}
		}
		out[i] = GeoPolygonSwaths{Outer: outer, Holes: holes}
	}
	return out, nil
}

// BoundarySwathsPlanar is the planar-polygon overload of BoundarySwaths
// (§4.6's "convenience overload accepting a planar polygon"): it skips
// projection and works entirely in the caller's planar frame.
func BoundarySwathsPlanar(svc *geos.Service, poly geo.PlanarPolygon, offset geo.Length, tolerance geo.Length) ([]PlanarPolygonSwaths, error) {
	insetMP, err := Buffer(svc, poly, offset)
	if err != nil {
		return nil, err
	}
	if insetMP.Empty() {
		return nil, nil
	}

	simpMP, err := SimplifyMultiPolygon(svc, insetMP, tolerance)
	if err != nil {
		return nil, err
	}

	out := make([]PlanarPolygonSwaths, len(simpMP.Polygons))
	for pi, p := range simpMP.Polygons {
		rings, corners, err := PolygonCorners(svc, p)
		if err != nil {
			return nil, err
		}
		outer, err := ExtractSwaths(rings[0], corners[0])
		if err != nil {
			return nil, err
		}
		holes := make([]geo.PlanarMultiPath, len(rings)-1)
		for i := 1; i < len(rings); i++ {
			holes[i-1], err = ExtractSwaths(rings[i], corners[i])
			if err != nil {
				return nil, err
			}
		}
		out[pi] = PlanarPolygonSwaths{Outer: outer, Holes: holes}
	}
	return out, nil
}

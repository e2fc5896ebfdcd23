// Package inset implements the boundary-inset swath generator: the
// projector → buffer → simplify → corner-detect → swath-extract pipeline
// described in §4 of the design. Every operation here is a pure function
// of its geometric inputs (§5): no I/O, no shared state, safe to call
// concurrently on disjoint inputs.
package inset

import (
	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// MinOffset is the minimum inset distance §4.2 allows.
const MinOffset geo.Length = 1

// Buffer computes the negative-offset (inset) morphological buffer of a
// planar polygon (§4.2). offset must be at least MinOffset; the result
// may be empty (the polygon collapsed entirely), a single polygon, or
// several disjoint polygons where a narrow waist split the shape.
func Buffer(svc *geos.Service, poly geo.PlanarPolygon, offset geo.Length) (geo.PlanarMultiPolygon, error) {
	if offset < MinOffset {
		return geo.PlanarMultiPolygon{}, ferrors.Errorf(ferrors.InvalidInput, "inset offset %.3fm is below the %.0fm minimum", float64(offset), float64(MinOffset))
	}

	g, err := svc.MakePolygon(poly.Normalize())
	if err != nil {
		return geo.PlanarMultiPolygon{}, err
	}

	valid, err := svc.IsValid(g)
	if err != nil {
		return geo.PlanarMultiPolygon{}, err
	}
	if !valid {
		reason, rerr := svc.ValidityReason(g)
		if rerr != nil {
			reason = rerr.Error()
		}
		return geo.PlanarMultiPolygon{}, ferrors.Errorf(ferrors.InvalidInput, "input polygon is invalid: %s", reason)
	}

	buffered, err := svc.Buffer(g, -float64(offset))
	if err != nil {
		return geo.PlanarMultiPolygon{}, err
	}

	mp, err := svc.ReadMultiPolygon(buffered)
	if err != nil {
		return geo.PlanarMultiPolygon{}, err
	}
	if mp.Empty() {
		return mp, nil
	}

	ok, err := svc.IsValid(buffered)
	if err != nil {
		return geo.PlanarMultiPolygon{}, err
	}
	if !ok {
		reason, rerr := svc.ValidityReason(buffered)
		if rerr != nil {
			reason = rerr.Error()
		}
		return geo.PlanarMultiPolygon{}, ferrors.Errorf(ferrors.GeometryError, "inset buffer is invalid: %s", reason)
	}

	return normalizeMultiPolygon(mp), nil
}

func normalizeMultiPolygon(mp geo.PlanarMultiPolygon) geo.PlanarMultiPolygon {
	out := geo.PlanarMultiPolygon{Polygons: make([]geo.PlanarPolygon, len(mp.Polygons))}
	for i, p := range mp.Polygons {
		out.Polygons[i] = p.Normalize()
	}
	return out
}

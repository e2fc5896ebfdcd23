package inset

import (
	"strings"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// MinTolerance is the smallest tolerance the simplifier back-off will try
// before giving up and returning the original geometry unchanged (§4.3).
const MinTolerance geo.Length = 0.01

// DefaultCleanupTolerance is the tolerance used to clean up the raw inset
// multipolygon before corner detection (§4.6 step 4).
const DefaultCleanupTolerance geo.Length = 0.10

// CornerDetectionTolerance is the aggressive tolerance used to find
// corners of a simplified ring (§4.4.3).
const CornerDetectionTolerance geo.Length = 10

// retryableReason reports whether a GEOS validity failure reason is one
// §4.3 says to retry at a smaller tolerance ("self-intersections" or "too
// few points"), as opposed to any other reason, which is fatal.
func retryableReason(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "self-intersection") || strings.Contains(r, "too few points")
}

// SimplifyPolygon applies Douglas-Peucker simplification to a single
// polygon (outer ring plus holes) with the tolerance back-off policy of
// §4.3: halve the tolerance on a retryable validity failure, and fall
// back to the original polygon once tolerance drops below MinTolerance.
// Orientation is never treated as a failure — it is corrected afterward
// regardless of outcome, which is what §4.3's "wrong orientation...
// return it anyway" amounts to once a geometry library like GEOS doesn't
// consider orientation part of validity in the first place.
func SimplifyPolygon(svc *geos.Service, poly geo.PlanarPolygon, tolerance geo.Length) (geo.PlanarPolygon, error) {
	if tolerance < MinTolerance {
		return geo.PlanarPolygon{}, ferrors.Errorf(ferrors.InvalidInput, "simplify tolerance %.4fm is below the %.2fm minimum", float64(tolerance), float64(MinTolerance))
	}

	original := poly.Normalize()
	g, err := svc.MakePolygon(original)
	if err != nil {
		return geo.PlanarPolygon{}, err
	}

	for t := tolerance; t >= MinTolerance; t /= 2 {
		simplified, err := svc.Simplify(g, float64(t))
		if err != nil {
			return geo.PlanarPolygon{}, err
		}

		valid, err := svc.IsValid(simplified)
		if err != nil {
			return geo.PlanarPolygon{}, err
		}
		if valid {
			mp, err := svc.ReadMultiPolygon(simplified)
			if err != nil {
				return geo.PlanarPolygon{}, err
			}
			if len(mp.Polygons) != 1 {
				return geo.PlanarPolygon{}, ferrors.Errorf(ferrors.GeometryError, "simplify produced %d polygons from 1, expected exactly one", len(mp.Polygons))
			}
			return mp.Polygons[0], nil
		}

		reason, rerr := svc.ValidityReason(simplified)
		if rerr != nil {
			return geo.PlanarPolygon{}, rerr
		}
		if !retryableReason(reason) {
			return geo.PlanarPolygon{}, ferrors.Errorf(ferrors.GeometryError, "simplify produced an invalid geometry: %s", reason)
		}
		if t/2 < MinTolerance {
			break
		}
	}

	return original, nil
}

// SimplifyMultiPolygon simplifies every polygon of mp independently (§4.3
// is defined per-polygon; a multipolygon's components never interact
// during buffer cleanup since their interiors are already disjoint).
func SimplifyMultiPolygon(svc *geos.Service, mp geo.PlanarMultiPolygon, tolerance geo.Length) (geo.PlanarMultiPolygon, error) {
	out := geo.PlanarMultiPolygon{Polygons: make([]geo.PlanarPolygon, len(mp.Polygons))}
	for i, p := range mp.Polygons {
		sp, err := SimplifyPolygon(svc, p, tolerance)
		if err != nil {
			return geo.PlanarMultiPolygon{}, err
		}
		out.Polygons[i] = sp
	}
	return out, nil
}

// SimplifyRing simplifies a single ring in isolation (§4.4.3 uses this at
// CornerDetectionTolerance), by treating it as a holeless polygon and
// reading its outer ring back out.
func SimplifyRing(svc *geos.Service, ring geo.PlanarRing, tolerance geo.Length) (geo.PlanarRing, error) {
	p, err := SimplifyPolygon(svc, geo.PlanarPolygon{Outer: ring}, tolerance)
	if err != nil {
		return nil, err
	}
	return p.Outer, nil
}

package geos

/*
#include <geos_c.h>
#include <stdlib.h>
*/
import "C"

import "github.com/isoagro/fieldinset/internal/ferrors"

// IsValid reports whether g satisfies the OGC simple-features validity
// predicate (no self-intersections, correctly structured rings). Ring
// orientation is not part of this predicate — GEOS, like the OGC spec it
// implements, treats orientation as a separate concern, which is why §4.2
// and §4.3 call a wrong-orientation result "non-fatal": this module
// always normalizes orientation itself (geo.PlanarPolygon.Normalize)
// rather than ever needing to detect it here.
func (s *Service) IsValid(g *Geometry) (bool, error) {
	if g == nil || g.geom == nil {
		return false, ferrors.New(ferrors.Bug, "IsValid called with nil geometry")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	switch C.GEOSisValid_r(s.context, g.geom) {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, ferrors.New(ferrors.GeometryError, "validity check raised an exception")
	}
}

// ValidityReason returns the GEOS validator's explanation for why g is
// invalid — e.g. "Self-intersection" or "Too few points in geometry
// component" — which §4.3's simplifier back-off policy switches on.
func (s *Service) ValidityReason(g *Geometry) (string, error) {
	if g == nil || g.geom == nil {
		return "", ferrors.New(ferrors.Bug, "ValidityReason called with nil geometry")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	reason := C.GEOSisValidReason_r(s.context, g.geom)
	if reason == nil {
		return "", ferrors.New(ferrors.GeometryError, "failed to obtain validity reason")
	}
	defer freeCString(s.context, reason)
	return C.GoString(reason), nil
}

// Envelope returns the axis-aligned bounding box (minX, minY, maxX, maxY)
// of g, used by the projector (§4.1) to find a polygon's envelope
// centroid.
func (s *Service) Envelope(g *Geometry) (minX, minY, maxX, maxY float64, err error) {
	if g == nil || g.geom == nil {
		return 0, 0, 0, 0, ferrors.New(ferrors.Bug, "Envelope called with nil geometry")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	env := C.GEOSEnvelope_r(s.context, g.geom)
	if env == nil {
		return 0, 0, 0, 0, ferrors.New(ferrors.GeometryError, "failed to compute envelope")
	}
	defer C.GEOSGeom_destroy_r(s.context, env)

	shell := C.GEOSGetExteriorRing_r(s.context, env)
	if shell == nil {
		return 0, 0, 0, 0, ferrors.New(ferrors.GeometryError, "envelope has no ring")
	}
	cs := C.GEOSGeom_getCoordSeq_r(s.context, shell)
	if cs == nil {
		return 0, 0, 0, 0, ferrors.New(ferrors.GeometryError, "envelope ring has no coordinates")
	}

	var size C.uint
	C.GEOSCoordSeq_getSize_r(s.context, cs, &size)
	if size == 0 {
		return 0, 0, 0, 0, ferrors.New(ferrors.ProjectionError, "empty polygon has no envelope")
	}

	minX, minY = 1e308, 1e308
	maxX, maxY = -1e308, -1e308
	for i := C.uint(0); i < size; i++ {
		var x, y C.double
		C.GEOSCoordSeq_getX_r(s.context, cs, i, &x)
		C.GEOSCoordSeq_getY_r(s.context, cs, i, &y)
		fx, fy := float64(x), float64(y)
		if fx < minX {
			minX = fx
		}
		if fx > maxX {
			maxX = fx
		}
		if fy < minY {
			minY = fy
		}
		if fy > maxY {
			maxY = fy
		}
	}
	return minX, minY, maxX, maxY, nil
}

package geos

/*
#include <geos_c.h>
*/
import "C"

import "github.com/isoagro/fieldinset/internal/ferrors"

// segmentsPerCircle is the join/end/point-style segment count §4.2
// specifies: 32 segments per full circle.
const segmentsPerCircle = 32

// quadrantSegments returns the quadrant segment count GEOS's buffer
// parameters take, derived from segmentsPerCircle (a full circle has 4
// quadrants).
const quadrantSegments = segmentsPerCircle / 4

// Buffer computes the morphological buffer of geom at the given signed
// distance, using round join/end/point styles at 32 segments per circle
// and a two-sided (non-single-sided) offset, per §4.2's strategy
// parameters. A negative distance produces an inset.
func (s *Service) Buffer(g *Geometry, distance float64) (*Geometry, error) {
	if g == nil || g.geom == nil {
		return nil, ferrors.New(ferrors.Bug, "Buffer called with nil geometry")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	params := C.GEOSBufferParams_create_r(s.context)
	if params == nil {
		return nil, ferrors.New(ferrors.GeometryError, "failed to create buffer parameters")
	}
	defer C.GEOSBufferParams_destroy_r(s.context, params)

	C.GEOSBufferParams_setEndCapStyle_r(s.context, params, C.GEOSBUF_CAP_ROUND)
	C.GEOSBufferParams_setJoinStyle_r(s.context, params, C.GEOSBUF_JOIN_ROUND)
	C.GEOSBufferParams_setQuadrantSegments_r(s.context, params, C.int(quadrantSegments))
	C.GEOSBufferParams_setSingleSided_r(s.context, params, 0)

	result := C.GEOSBufferWithParams_r(s.context, params, g.geom, C.double(distance))
	if result == nil {
		return nil, ferrors.New(ferrors.GeometryError, "buffer operation failed")
	}
	return s.newGeometry(result), nil
}

// Simplify applies Douglas-Peucker simplification at the given tolerance
// (§4.3). It does not itself retry on validity failure — that back-off
// policy belongs to the caller (internal/inset.SimplifyPolygon), since it needs
// to decide what "the original geometry" means across rings/polygons/
// multipolygons, which this package has no notion of.
func (s *Service) Simplify(g *Geometry, tolerance float64) (*Geometry, error) {
	if g == nil || g.geom == nil {
		return nil, ferrors.New(ferrors.Bug, "Simplify called with nil geometry")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := C.GEOSSimplify_r(s.context, g.geom, C.double(tolerance))
	if result == nil {
		return nil, ferrors.New(ferrors.GeometryError, "simplify operation failed")
	}
	return s.newGeometry(result), nil
}

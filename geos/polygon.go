package geos

/*
#include <geos_c.h>
*/
import "C"

import (
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// makeRing builds a GEOS linear ring geometry from a planar ring via a
// coordinate sequence, avoiding a WKT text round-trip. Ownership of the
// coordinate sequence passes to the returned ring geometry.
func (s *Service) makeRing(r geo.PlanarRing) (*C.struct_GEOSGeom_t, error) {
	n := len(r)
	if n < 4 {
		return nil, ferrors.Errorf(ferrors.GeometryError, "ring has %d points, need at least 4", n)
	}

	cs := C.GEOSCoordSeq_create_r(s.context, C.uint(n), 2)
	if cs == nil {
		return nil, ferrors.New(ferrors.GeometryError, "failed to allocate coordinate sequence")
	}
	for i, p := range r {
		if C.GEOSCoordSeq_setX_r(s.context, cs, C.uint(i), C.double(p.X)) == 0 ||
			C.GEOSCoordSeq_setY_r(s.context, cs, C.uint(i), C.double(p.Y)) == 0 {
			C.GEOSCoordSeq_destroy_r(s.context, cs)
			return nil, ferrors.New(ferrors.GeometryError, "failed to set ring coordinate")
		}
	}

	ring := C.GEOSGeom_createLinearRing_r(s.context, cs)
	if ring == nil {
		return nil, ferrors.New(ferrors.GeometryError, "failed to build linear ring")
	}
	return ring, nil
}

// MakePolygon builds a GEOS polygon geometry from a planar polygon.
func (s *Service) MakePolygon(p geo.PlanarPolygon) (*Geometry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	shell, err := s.makeRing(p.Outer)
	if err != nil {
		return nil, err
	}

	var holes **C.struct_GEOSGeom_t
	if len(p.Inners) > 0 {
		holeSlice := make([]*C.struct_GEOSGeom_t, len(p.Inners))
		for i, inner := range p.Inners {
			hole, err := s.makeRing(inner)
			if err != nil {
				C.GEOSGeom_destroy_r(s.context, shell)
				for _, h := range holeSlice[:i] {
					C.GEOSGeom_destroy_r(s.context, h)
				}
				return nil, err
			}
			holeSlice[i] = hole
		}
		holes = &holeSlice[0]
	}

	poly := C.GEOSGeom_createPolygon_r(s.context, shell, holes, C.uint(len(p.Inners)))
	if poly == nil {
		return nil, ferrors.New(ferrors.GeometryError, "failed to build polygon")
	}
	return s.newGeometry(poly), nil
}

// MakeMultiPolygon builds a GEOS multipolygon geometry from a planar
// multipolygon.
func (s *Service) MakeMultiPolygon(mp geo.PlanarMultiPolygon) (*Geometry, error) {
	if len(mp.Polygons) == 0 {
		return nil, ferrors.New(ferrors.Bug, "MakeMultiPolygon called with no polygons")
	}

	polys := make([]*Geometry, len(mp.Polygons))
	for i, p := range mp.Polygons {
		g, err := s.MakePolygon(p)
		if err != nil {
			return nil, err
		}
		polys[i] = g
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	raw := make([]*C.struct_GEOSGeom_t, len(polys))
	for i, g := range polys {
		raw[i] = g.geom
	}

	mpGeom := C.GEOSGeom_createCollection_r(s.context, C.GEOS_MULTIPOLYGON, &raw[0], C.uint(len(raw)))
	if mpGeom == nil {
		return nil, ferrors.New(ferrors.GeometryError, "failed to build multipolygon")
	}
	// The collection now owns each sub-geometry; detach the finalizers on
	// the per-polygon wrappers so they don't double-free.
	for _, g := range polys {
		g.geom = nil
	}
	return s.newGeometry(mpGeom), nil
}

func (s *Service) readRing(ring *C.struct_GEOSGeom_t) (geo.PlanarRing, error) {
	cs := C.GEOSGeom_getCoordSeq_r(s.context, ring)
	if cs == nil {
		return nil, ferrors.New(ferrors.GeometryError, "ring has no coordinate sequence")
	}
	var size C.uint
	if C.GEOSCoordSeq_getSize_r(s.context, cs, &size) == 0 {
		return nil, ferrors.New(ferrors.GeometryError, "failed to read ring size")
	}

	out := make(geo.PlanarRing, int(size))
	for i := C.uint(0); i < size; i++ {
		var x, y C.double
		if C.GEOSCoordSeq_getX_r(s.context, cs, i, &x) == 0 ||
			C.GEOSCoordSeq_getY_r(s.context, cs, i, &y) == 0 {
			return nil, ferrors.New(ferrors.GeometryError, "failed to read ring coordinate")
		}
		out[int(i)] = geo.PlanarPoint{X: geo.Length(x), Y: geo.Length(y)}
	}
	return out, nil
}

func (s *Service) readPolygon(poly *C.struct_GEOSGeom_t) (geo.PlanarPolygon, error) {
	shell := C.GEOSGetExteriorRing_r(s.context, poly)
	if shell == nil {
		return geo.PlanarPolygon{}, ferrors.New(ferrors.GeometryError, "polygon has no exterior ring")
	}
	outer, err := s.readRing(shell)
	if err != nil {
		return geo.PlanarPolygon{}, err
	}

	nHoles := int(C.GEOSGetNumInteriorRings_r(s.context, poly))
	if nHoles < 0 {
		return geo.PlanarPolygon{}, ferrors.New(ferrors.GeometryError, "failed to read interior ring count")
	}
	inners := make([]geo.PlanarRing, nHoles)
	for i := 0; i < nHoles; i++ {
		hole := C.GEOSGetInteriorRingN_r(s.context, poly, C.int(i))
		if hole == nil {
			return geo.PlanarPolygon{}, ferrors.Errorf(ferrors.GeometryError, "missing interior ring %d", i)
		}
		inner, err := s.readRing(hole)
		if err != nil {
			return geo.PlanarPolygon{}, err
		}
		inners[i] = inner
	}

	return geo.PlanarPolygon{Outer: outer, Inners: inners}.Normalize(), nil
}

// ReadMultiPolygon converts a GEOS geometry (a polygon, multipolygon, or
// an empty collection produced when a buffer collapses entirely) back
// into a planar multipolygon.
func (s *Service) ReadMultiPolygon(g *Geometry) (geo.PlanarMultiPolygon, error) {
	if g == nil || g.geom == nil {
		return geo.PlanarMultiPolygon{}, nil
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if C.GEOSisEmpty_r(s.context, g.geom) == 1 {
		return geo.PlanarMultiPolygon{}, nil
	}

	typeID := C.GEOSGeomTypeId_r(s.context, g.geom)
	switch typeID {
	case C.GEOS_POLYGON:
		p, err := s.readPolygon(g.geom)
		if err != nil {
			return geo.PlanarMultiPolygon{}, err
		}
		return geo.PlanarMultiPolygon{Polygons: []geo.PlanarPolygon{p}}, nil
	case C.GEOS_MULTIPOLYGON, C.GEOS_GEOMETRYCOLLECTION:
		n := int(C.GEOSGetNumGeometries_r(s.context, g.geom))
		if n < 0 {
			return geo.PlanarMultiPolygon{}, ferrors.New(ferrors.GeometryError, "failed to read multipolygon member count")
		}
		polys := make([]geo.PlanarPolygon, 0, n)
		for i := 0; i < n; i++ {
			sub := C.GEOSGetGeometryN_r(s.context, g.geom, C.int(i))
			if sub == nil {
				continue
			}
			if C.GEOSGeomTypeId_r(s.context, sub) != C.GEOS_POLYGON {
				continue
			}
			p, err := s.readPolygon(sub)
			if err != nil {
				return geo.PlanarMultiPolygon{}, err
			}
			polys = append(polys, p)
		}
		return geo.PlanarMultiPolygon{Polygons: polys}, nil
	default:
		return geo.PlanarMultiPolygon{}, nil
	}
}

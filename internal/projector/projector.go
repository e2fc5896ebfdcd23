// Package projector builds the local azimuthal-equidistant planar
// projection the inset core operates in (§4.1) and maps geometry between
// geodetic and planar coordinates.
package projector

import (
	"fmt"

	"github.com/michiho/go-proj/v10"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// Projection is a locally equidistant azimuthal-equidistant projection on
// the WGS-84 ellipsoid, centred on a polygon's envelope centroid (§4.1).
type Projection struct {
	origin geo.LatLon
	pj     *proj.PJ
}

// New builds a Projection from the geographic polygon's envelope centroid.
// It fails with ProjectionError if the polygon is empty or the ellipsoid
// parameters cannot be instantiated.
func New(svc *geos.Service, poly geo.GeoPolygon) (*Projection, error) {
	if len(poly.Outer) == 0 {
		return nil, ferrors.New(ferrors.ProjectionError, "cannot project an empty polygon")
	}

	g, err := svc.MakePolygon(geoPolygonAsPlanarDegrees(poly))
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ProjectionError, err, "building envelope geometry")
	}

	minLon, minLat, maxLon, maxLat, err := svc.Envelope(g)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ProjectionError, err, "computing polygon envelope")
	}

	origin := geo.LatLon{
		Lat: geo.NewDegrees((minLat + maxLat) / 2),
		Lon: geo.NewDegrees((minLon + maxLon) / 2),
	}

	ctx := proj.NewContext()
	def := fmt.Sprintf(
		"+proj=aeqd +lat_0=%f +lon_0=%f +ellps=WGS84 +units=m +no_defs +type=crs",
		origin.Lat.Degrees(), origin.Lon.Degrees(),
	)
	pj, err := ctx.NewCRSToCRS("EPSG:4326", def, nil)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.ProjectionError, err, "instantiating azimuthal equidistant projection at %.6f,%.6f", origin.Lat.Degrees(), origin.Lon.Degrees())
	}
	pj, err = pj.NormalizeForVisualization()
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ProjectionError, err, "normalizing projection axis order")
	}

	return &Projection{origin: origin, pj: pj}, nil
}

// geoPolygonAsPlanarDegrees reinterprets a geodetic polygon's (lon, lat)
// pairs as planar (x, y) so it can be fed through geos.Envelope — the
// envelope computation only needs coordinate extrema, not a true planar
// frame.
func geoPolygonAsPlanarDegrees(poly geo.GeoPolygon) geo.PlanarPolygon {
	return geo.PlanarPolygon{
		Outer:  geoRingAsPlanarDegrees(poly.Outer),
		Inners: mapSlice(poly.Inners, geoRingAsPlanarDegrees),
	}
}

func geoRingAsPlanarDegrees(r geo.GeoRing) geo.PlanarRing {
	out := make(geo.PlanarRing, len(r))
	for i, p := range r {
		out[i] = geo.PlanarPoint{X: geo.Length(p.Lon.Degrees()), Y: geo.Length(p.Lat.Degrees())}
	}
	return out
}

func mapSlice[A, B any](in []A, f func(A) B) []B {
	if in == nil {
		return nil
	}
	out := make([]B, len(in))
	for i, a := range in {
		out[i] = f(a)
	}
	return out
}

// ForwardPoint maps a geodetic point into the planar frame.
func (p *Projection) ForwardPoint(g geo.LatLon) (geo.PlanarPoint, error) {
	c, err := p.pj.Forward(proj.Coord{X: g.Lon.Degrees(), Y: g.Lat.Degrees()})
	if err != nil {
		return geo.PlanarPoint{}, ferrors.Wrap(ferrors.ProjectionError, err, "forward projection")
	}
	return geo.PlanarPoint{X: geo.Length(c.X), Y: geo.Length(c.Y)}, nil
}

// InversePoint maps a planar point back into geodetic coordinates.
func (p *Projection) InversePoint(pt geo.PlanarPoint) (geo.LatLon, error) {
	c, err := p.pj.Inverse(proj.Coord{X: float64(pt.X), Y: float64(pt.Y)})
	if err != nil {
		return geo.LatLon{}, ferrors.Wrap(ferrors.ProjectionError, err, "inverse projection")
	}
	return geo.LatLon{Lat: geo.NewDegrees(c.Y), Lon: geo.NewDegrees(c.X)}, nil
}

// ForwardRing maps every point of a geographic ring into the planar frame.
func (p *Projection) ForwardRing(r geo.GeoRing) (geo.PlanarRing, error) {
	out := make(geo.PlanarRing, len(r))
	for i, pt := range r {
		v, err := p.ForwardPoint(pt)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// InverseRing maps every point of a planar ring back to geodetic.
func (p *Projection) InverseRing(r geo.PlanarRing) (geo.GeoRing, error) {
	out := make(geo.GeoRing, len(r))
	for i, pt := range r {
		v, err := p.InversePoint(pt)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ForwardPolygon maps a geographic polygon into the planar frame.
func (p *Projection) ForwardPolygon(poly geo.GeoPolygon) (geo.PlanarPolygon, error) {
	outer, err := p.ForwardRing(poly.Outer)
	if err != nil {
		return geo.PlanarPolygon{}, err
	}
	inners := make([]geo.PlanarRing, len(poly.Inners))
	for i, inner := range poly.Inners {
		r, err := p.ForwardRing(inner)
		if err != nil {
			return geo.PlanarPolygon{}, err
		}
		inners[i] = r
	}
	return geo.PlanarPolygon{Outer: outer, Inners: inners}, nil
}

// InverseMultiPath maps a planar multipath back to geodetic coordinates.
func (p *Projection) InverseMultiPath(mp geo.PlanarMultiPath) (geo.GeoMultiPath, error) {
	out := make(geo.GeoMultiPath, len(mp))
	for i, path := range mp {
		gp := make(geo.GeoPath, len(path))
		for j, pt := range path {
			v, err := p.InversePoint(pt)
			if err != nil {
				return nil, err
			}
			gp[j] = v
		}
		out[i] = gp
	}
	return out, nil
}

// Package wkt renders FarmDb boundaries and swaths as tab-separated
// Well-Known Text lines (§6): "<field name>\t<part name>\t<WKT>" per row.
//
// This is pure text formatting over points already carried in the
// FarmDb's own coordinate system — it never calls into GEOS.
// geos.Service.ToWKT converts a *Geometry the C library already owns,
// which exists here only for planar polygons mid-buffer; formatting
// geodetic boundaries and swath paths that never touch GEOS would mean
// manufacturing throwaway C geometries solely to stringify them, so
// this package builds the text with stdlib strings.Builder/fmt instead.
package wkt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/isoagro/fieldinset/internal/geo"
)

// Precision is the number of decimal digits written after the point for
// each coordinate — enough to preserve sub-metre precision at WGS-84
// latitudes without padding every line with noise digits.
const Precision = 8

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

// Polygon renders poly as an OGC WKT POLYGON, outer ring first, then
// each hole, every ring closed (first point repeated as last) as WKT
// requires.
func Polygon(poly geo.GeoPolygon) string {
	var b strings.Builder
	b.WriteString("POLYGON (")
	writeRing(&b, poly.Outer)
	for _, hole := range poly.Inners {
		b.WriteString(", ")
		writeRing(&b, hole)
	}
	b.WriteString(")")
	return b.String()
}

func writeRing(b *strings.Builder, ring geo.GeoRing) {
	b.WriteString("(")
	for i, p := range ring {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s %s", formatCoord(p.Lon.Degrees()), formatCoord(p.Lat.Degrees()))
	}
	if n := len(ring); n > 0 && (ring[0].Lat != ring[n-1].Lat || ring[0].Lon != ring[n-1].Lon) {
		fmt.Fprintf(b, ", %s %s", formatCoord(ring[0].Lon.Degrees()), formatCoord(ring[0].Lat.Degrees()))
	}
	b.WriteString(")")
}

// MultiLineString renders mp as an OGC WKT MULTILINESTRING, one
// component per swath path, open (no implied closure).
func MultiLineString(mp geo.GeoMultiPath) string {
	var b strings.Builder
	b.WriteString("MULTILINESTRING (")
	for i, path := range mp {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, p := range path {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s %s", formatCoord(p.Lon.Degrees()), formatCoord(p.Lat.Degrees()))
		}
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}

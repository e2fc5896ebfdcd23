package wkt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/geo"
)

func square(lat, lon, side float64) geo.GeoRing {
	d := geo.NewDegrees
	return geo.GeoRing{
		{Lat: d(lat), Lon: d(lon)},
		{Lat: d(lat), Lon: d(lon + side)},
		{Lat: d(lat + side), Lon: d(lon + side)},
		{Lat: d(lat + side), Lon: d(lon)},
	}
}

func TestPolygonClosesRing(t *testing.T) {
	poly := geo.GeoPolygon{Outer: square(0, 0, 1)}
	s := Polygon(poly)
	require.True(t, strings.HasPrefix(s, "POLYGON (("))
	assert.True(t, strings.HasSuffix(s, "0.00000000 0.00000000))"))
}

func TestPolygonWithHoleHasTwoRings(t *testing.T) {
	poly := geo.GeoPolygon{Outer: square(0, 0, 1), Inners: []geo.GeoRing{square(0.2, 0.2, 0.1)}}
	s := Polygon(poly)
	// Two rings are joined by exactly one "), (" separator.
	assert.Equal(t, 1, strings.Count(s, "), ("))
}

func TestMultiLineStringFormatsEachPath(t *testing.T) {
	d := geo.NewDegrees
	mp := geo.GeoMultiPath{
		{{Lat: d(0), Lon: d(0)}, {Lat: d(0), Lon: d(1)}},
		{{Lat: d(1), Lon: d(0)}, {Lat: d(1), Lon: d(1)}},
	}
	s := MultiLineString(mp)
	require.True(t, strings.HasPrefix(s, "MULTILINESTRING (("))
	// Two paths are joined by exactly one "), (" separator.
	assert.Equal(t, 1, strings.Count(s, "), ("))
}

func TestWriterNamesSinglePartAsBoundary(t *testing.T) {
	db := farmdb.NewFarmDb()
	cust := db.AddCustomer("C1", "Acme")
	farm := db.AddFarm("F1", "North 40", cust)
	field := db.AddField("FLD1", "Home Field", 0, "", farm)
	db.SetPart(field, 0, geo.GeoPolygon{Outer: square(0, 0, 1)})

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, db))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	cols := strings.Split(lines[0], "\t")
	require.Len(t, cols, 3)
	assert.Equal(t, "Home Field", cols[0])
	assert.Equal(t, "Boundary", cols[1])
}

func TestWriterNamesMultiPartFieldsWithSuffix(t *testing.T) {
	db := farmdb.NewFarmDb()
	cust := db.AddCustomer("C1", "Acme")
	farm := db.AddFarm("F1", "North 40", cust)
	field := db.AddField("FLD1", "Home Field", 0, "", farm)
	db.SetPart(field, 0, geo.GeoPolygon{Outer: square(0, 0, 1)})
	db.SetPart(field, 1, geo.GeoPolygon{Outer: square(5, 5, 1)})

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, db))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Boundary F1")
	assert.Contains(t, lines[1], "Boundary F2")
}

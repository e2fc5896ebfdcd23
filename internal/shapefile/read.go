// Package shapefile reads the strict five-field Shapefile schema §6
// describes: a CLIENTNAME/FARM_NAME/FIELD_NAME/WITH_HOLES/fid DBF paired
// with a SHPT_POLYGON .shp, deduplicating customers/farms/fields by name
// and building the same FarmDb container the ISO-11783 codec does.
package shapefile

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"go.uber.org/zap"

	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// requiredFields is the DBF schema §6 mandates, in order.
var requiredFields = []string{"fid", "CLIENTNAME", "FARM_NAME", "FIELD_NAME", "WITH_HOLES"}

// Reader parses a Shapefile into a FarmDb, logging nothing on its own
// happy path — the logger exists for parity with isoxml.Reader and any
// future warnings about lenient records.
type Reader struct {
	log *zap.Logger
}

// NewReader returns a Reader that would log to log (currently unused:
// the Shapefile schema here is strict enough that every divergence is a
// hard ParseError, not a warn-and-ignore case).
func NewReader(log *zap.Logger) *Reader {
	return &Reader{log: log}
}

// Read opens path (a .shp file; its sibling .shx and .dbf are located by
// go-shp from the same basename) and builds a FarmDb from its records.
func (rd *Reader) Read(path string) (*farmdb.FarmDb, error) {
	sr, err := shp.Open(path)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "shapefile: opening %s", path)
	}
	defer sr.Close()

	if sr.GeometryType() != shp.POLYGON {
		return nil, ferrors.Errorf(ferrors.ParseError, "shapefile: %s is not SHPT_POLYGON", path)
	}

	fields := sr.Fields()
	if err := validateSchema(fields, path); err != nil {
		return nil, err
	}

	db := farmdb.NewFarmDb()
	customers := make(map[string]farmdb.CustomerHandle)
	farms := make(map[[2]string]farmdb.FarmHandle)
	fieldHandles := make(map[[3]string]farmdb.FieldHandle)

	record := 0
	for sr.Next() {
		record++
		n, shape := sr.Shape()

		clientName := strings.TrimSpace(sr.Attribute(indexOf(fields, "CLIENTNAME")))
		farmName := strings.TrimSpace(sr.Attribute(indexOf(fields, "FARM_NAME")))
		fieldName := strings.TrimSpace(sr.Attribute(indexOf(fields, "FIELD_NAME")))

		if clientName == "" || farmName == "" || fieldName == "" {
			return nil, ferrors.Errorf(ferrors.ParseError, "shapefile: %s record %d has an empty name field", path, record)
		}

		custHandle, ok := customers[clientName]
		if !ok {
			custHandle = db.AddCustomer(clientName, clientName)
			customers[clientName] = custHandle
		}

		farmKey := [2]string{clientName, farmName}
		farmHandle, ok := farms[farmKey]
		if !ok {
			farmHandle = db.AddFarm(farmName, farmName, custHandle)
			farms[farmKey] = farmHandle
		} else if db.Farm(farmHandle).Customer != custHandle {
			return nil, ferrors.Errorf(ferrors.ParseError, "shapefile: %s record %d: farm %s maps to two different customers", path, record, farmName)
		}

		fieldKey := [3]string{clientName, farmName, fieldName}
		fieldHandle, ok := fieldHandles[fieldKey]
		if !ok {
			fieldHandle = db.AddField(fieldName, fieldName, 0, "", farmHandle)
			fieldHandles[fieldKey] = fieldHandle
		} else if db.Field(fieldHandle).Farm != farmHandle {
			return nil, ferrors.Errorf(ferrors.ParseError, "shapefile: %s record %d: field %s maps to two different farms", path, record, fieldName)
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, ferrors.Errorf(ferrors.ParseError, "shapefile: %s record %d is not a polygon shape", path, record)
		}
		boundary, err := polygonFromShape(poly)
		if err != nil {
			return nil, ferrors.Wrapf(ferrors.ParseError, err, "shapefile: %s record %d", path, record)
		}

		f := db.Field(fieldHandle)
		db.SetPart(fieldHandle, len(f.Parts), boundary)

		_ = n
	}
	if err := sr.Err(); err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "shapefile: reading %s", path)
	}

	return db, nil
}

func indexOf(fields []shp.Field, name string) int {
	for i, f := range fields {
		if strings.TrimRight(string(f.Name[:]), "\x00") == name {
			return i
		}
	}
	return -1
}

// validateSchema enforces the exact five-field, in-order DBF schema §6
// requires.
func validateSchema(fields []shp.Field, path string) error {
	if len(fields) != len(requiredFields) {
		return ferrors.Errorf(ferrors.ParseError, "shapefile: %s has %d DBF fields, expected exactly %d", path, len(fields), len(requiredFields))
	}
	for i, want := range requiredFields {
		got := strings.TrimRight(string(fields[i].Name[:]), "\x00")
		if got != want {
			return ferrors.Errorf(ferrors.ParseError, "shapefile: %s DBF field %d is %q, expected %q", path, i, got, want)
		}
	}
	return nil
}

// polygonFromShape converts a go-shp Polygon into a geodetic polygon:
// part 0 is always the outer ring, every other part a hole (§6) — read
// without closure, reordering, or correction beyond what shp already
// gives, since go-shp's Points are taken verbatim in (lon, lat) order.
func polygonFromShape(p *shp.Polygon) (geo.GeoPolygon, error) {
	if p.NumParts < 1 {
		return geo.GeoPolygon{}, ferrors.New(ferrors.ParseError, "polygon shape has no parts")
	}
	parts := make([][2]int, p.NumParts)
	for i := 0; i < int(p.NumParts); i++ {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < int(p.NumParts) {
			end = int(p.Parts[i+1])
		}
		parts[i] = [2]int{start, end}
	}

	toRing := func(start, end int) geo.GeoRing {
		ring := make(geo.GeoRing, end-start)
		for i := start; i < end; i++ {
			pt := p.Points[i]
			ring[i-start] = geo.LatLon{Lat: geo.NewDegrees(pt.Y), Lon: geo.NewDegrees(pt.X)}
		}
		return ring
	}

	poly := geo.GeoPolygon{Outer: toRing(parts[0][0], parts[0][1])}
	for i := 1; i < len(parts); i++ {
		poly.Inners = append(poly.Inners, toRing(parts[i][0], parts[i][1]))
	}
	return poly, nil
}

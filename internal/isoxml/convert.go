package isoxml

import (
	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

// ringFromLineString converts an Exterior/Interior LSG into a geodetic
// ring; the XML schema already requires closure and a 4-point minimum
// (enforced by readLineString), so this is a pure type conversion.
func ringFromLineString(ls LineString) geo.GeoRing {
	ring := make(geo.GeoRing, len(ls.Points))
	for i, p := range ls.Points {
		ring[i] = geo.LatLon{Lat: geo.NewDegrees(p.LatDeg), Lon: geo.NewDegrees(p.LonDeg)}
	}
	return ring
}

func polygonFromPLN(pln Polygon) (geo.GeoPolygon, error) {
	var poly geo.GeoPolygon
	haveOuter := false
	for _, ls := range pln.Lines {
		switch ls.Type {
		case LineStringExterior:
			if haveOuter {
				return geo.GeoPolygon{}, ferrors.New(ferrors.ParseError, "isoxml: PLN has more than one Exterior line string")
			}
			poly.Outer = ringFromLineString(ls)
			haveOuter = true
		case LineStringInterior:
			poly.Inners = append(poly.Inners, ringFromLineString(ls))
		}
	}
	if !haveOuter {
		return geo.GeoPolygon{}, ferrors.New(ferrors.ParseError, "isoxml: PLN has no Exterior line string")
	}
	return poly, nil
}

// ToFarmDb builds a FarmDb from a parsed TaskData (§6): customers and
// farms first, then fields with their boundary parts (one per Boundary
// PLN element).
func ToFarmDb(td *TaskData) (*farmdb.FarmDb, error) {
	db := farmdb.NewFarmDb()

	customerHandles := make(map[string]farmdb.CustomerHandle, len(td.Customers))
	for _, c := range td.Customers {
		customerHandles[c.ID] = db.AddCustomer(c.ID, c.Name)
	}

	farmHandles := make(map[string]farmdb.FarmHandle, len(td.Farms))
	for _, f := range td.Farms {
		cust, ok := customerHandles[f.CustomerID]
		if f.CustomerID != "" && !ok {
			return nil, ferrors.Errorf(ferrors.ParseError, "isoxml: farm %s references unknown customer %s", f.ID, f.CustomerID)
		}
		farmHandles[f.ID] = db.AddFarm(f.ID, f.Name, cust)
	}

	for _, f := range td.Fields {
		farm := farmdb.NoFarm
		if f.FarmID != "" {
			var ok bool
			farm, ok = farmHandles[f.FarmID]
			if !ok {
				return nil, ferrors.Errorf(ferrors.ParseError, "isoxml: field %s references unknown farm %s", f.ID, f.FarmID)
			}
		}
		handle := db.AddField(f.ID, f.Name, f.Area, f.Code, farm)

		part := 0
		for _, pln := range f.Polygons {
			if pln.Type != PolygonTypeBoundary {
				continue
			}
			poly, err := polygonFromPLN(pln)
			if err != nil {
				return nil, ferrors.Wrapf(ferrors.ParseError, err, "isoxml: field %s part %d", f.ID, part+1)
			}
			db.SetPart(handle, part, poly)
			part++
		}
	}

	return db, nil
}

// FromFarmDb builds a TaskData from a FarmDb, including each field's
// boundary parts and, if Inset has been run, guidance swaths encoded as
// PLN elements with Guidance-type line strings (§6's swath naming carries
// over onto the written PLN/LSG structure: one PLN per named swath
// component).
func FromFarmDb(db *farmdb.FarmDb) *TaskData {
	td := &TaskData{VersionMajor: 4, VersionMinor: 3}

	for _, ch := range db.Customers() {
		c := db.Customer(ch)
		td.Customers = append(td.Customers, Customer{ID: c.ID, Name: c.Name})
	}
	for _, fh := range db.Farms() {
		f := db.Farm(fh)
		cid := ""
		if c := db.Customer(f.Customer); c != nil {
			cid = c.ID
		}
		td.Farms = append(td.Farms, Farm{ID: f.ID, Name: f.Name, CustomerID: cid})
	}

	for _, h := range db.Fields() {
		f := db.Field(h)
		farm := db.Farm(f.Farm)
		field := Field{ID: f.ID, Name: f.Name, Area: f.Area, Code: f.Code}
		if farm != nil {
			field.FarmID = farm.ID
			if c := db.Customer(farm.Customer); c != nil {
				field.CustomerID = c.ID
			}
		}

		for _, part := range f.Parts {
			field.Polygons = append(field.Polygons, plnFromPolygon(part.Boundary))
		}
		for _, sw := range f.Swaths {
			field.Polygons = append(field.Polygons, plnFromSwath(sw))
		}

		td.Fields = append(td.Fields, field)
	}

	return td
}

func plnFromPolygon(poly geo.GeoPolygon) Polygon {
	pln := Polygon{Type: PolygonTypeBoundary}
	pln.Lines = append(pln.Lines, lineStringFromRing(poly.Outer, LineStringExterior))
	for _, hole := range poly.Inners {
		pln.Lines = append(pln.Lines, lineStringFromRing(hole, LineStringInterior))
	}
	return pln
}

func lineStringFromRing(ring geo.GeoRing, kind string) LineString {
	ls := LineString{Type: kind}
	for _, p := range ring {
		ls.Points = append(ls.Points, Point{Type: PointTypeField, LatDeg: p.Lat.Degrees(), LonDeg: p.Lon.Degrees()})
	}
	return ls
}

func plnFromSwath(sw farmdb.SwathName) Polygon {
	pln := Polygon{Type: PolygonTypeBoundary}
	for _, path := range sw.Path {
		ls := LineString{Type: LineStringGuidance}
		for i, p := range path {
			pointType := PointTypeGuidePoint
			switch i {
			case 0:
				pointType = PointTypeGuideA
			case len(path) - 1:
				pointType = PointTypeGuideB
			}
			ls.Points = append(ls.Points, Point{Type: pointType, LatDeg: p.Lat.Degrees(), LonDeg: p.Lon.Degrees()})
		}
		pln.Lines = append(pln.Lines, ls)
	}
	return pln
}

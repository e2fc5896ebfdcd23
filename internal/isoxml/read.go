package isoxml

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/isoagro/fieldinset/internal/ferrors"
)

var (
	customerIDPattern = regexp.MustCompile(`^CTR\d+$`)
	farmIDPattern     = regexp.MustCompile(`^FRM\d+$`)
	fieldIDPattern    = regexp.MustCompile(`^PFD\d+$`)
)

// Reader parses ISO11783_TaskData documents, logging a warning for every
// unknown child element it drops (§7's diagnostic sink, Supplement A).
type Reader struct {
	log *zap.Logger
}

// NewReader returns a Reader that logs ignored elements to log.
func NewReader(log *zap.Logger) *Reader {
	return &Reader{log: log}
}

// Read parses a single ISO11783_TaskData document from r.
func (rd *Reader) Read(r io.Reader) (*TaskData, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ferrors.New(ferrors.ParseError, "isoxml: no ISO11783_TaskData root element found")
		}
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ParseError, err, "isoxml: reading XML token")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "ISO11783_TaskData" {
			return nil, ferrors.Errorf(ferrors.ParseError, "isoxml: expected root element ISO11783_TaskData, found %s", start.Name.Local)
		}
		return rd.readTaskData(dec, start)
	}
}

// splitAttrs partitions attrs into the values named by known (by XML
// local name) and everything else, which is returned as an AttrBag in
// source order.
func splitAttrs(attrs []xml.Attr, known ...string) (map[string]string, AttrBag) {
	values := make(map[string]string, len(known))
	var bag AttrBag
	for _, a := range attrs {
		matched := false
		for _, k := range known {
			if a.Name.Local == k {
				values[k] = a.Value
				matched = true
				break
			}
		}
		if !matched {
			bag = append(bag, a)
		}
	}
	return values, bag
}

func intAttr(values map[string]string, key string, def int) (int, error) {
	v, ok := values[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ferrors.Errorf(ferrors.ParseError, "isoxml: attribute %s=%q is not an integer", key, v)
	}
	return n, nil
}

func floatAttr(values map[string]string, key string) (float64, error) {
	v, ok := values[key]
	if !ok {
		return 0, ferrors.Errorf(ferrors.ParseError, "isoxml: missing required attribute %s", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, ferrors.Errorf(ferrors.ParseError, "isoxml: attribute %s=%q is not a number", key, v)
	}
	return f, nil
}

func requireAttr(values map[string]string, key, elementName string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", ferrors.Errorf(ferrors.ParseError, "isoxml: element %s missing required attribute %s", elementName, key)
	}
	return v, nil
}

func (rd *Reader) warnUnknownElement(parent string, name xml.Name) {
	rd.log.Warn("isoxml: ignoring unknown child element",
		zap.String("parent", parent),
		zap.String("element", name.Local),
	)
}

// skipElement discards start and everything nested inside it.
func skipElement(dec *xml.Decoder, start xml.StartElement) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return ferrors.Wrap(ferrors.ParseError, err, "isoxml: skipping unknown element")
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func (rd *Reader) readTaskData(dec *xml.Decoder, start xml.StartElement) (*TaskData, error) {
	values, bag := splitAttrs(start.Attr, "VersionMajor", "VersionMinor", "DataTransferOrigin",
		"ManagementSoftwareManufacturer", "ManagementSoftwareVersion")

	td := &TaskData{UnknownAt: bag}
	var err error
	if td.VersionMajor, err = intAttrRequired(values, "VersionMajor"); err != nil {
		return nil, err
	}
	if td.VersionMinor, err = intAttrRequired(values, "VersionMinor"); err != nil {
		return nil, err
	}
	if td.DataTransferOrigin, err = intAttr(values, "DataTransferOrigin", DataTransferOriginUnset); err != nil {
		return nil, err
	}
	td.ManagementSoftwareManufacturer = values["ManagementSoftwareManufacturer"]
	td.ManagementSoftwareVersion = values["ManagementSoftwareVersion"]

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ParseError, err, "isoxml: reading ISO11783_TaskData children")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "CTR":
				c, err := rd.readCustomer(t)
				if err != nil {
					return nil, err
				}
				td.Customers = append(td.Customers, c)
			case "FRM":
				f, err := rd.readFarm(t)
				if err != nil {
					return nil, err
				}
				td.Farms = append(td.Farms, f)
			case "PFD":
				f, err := rd.readField(dec, t)
				if err != nil {
					return nil, err
				}
				td.Fields = append(td.Fields, f)
			case "VPN":
				_, bag := splitAttrs(t.Attr)
				if err := skipElement(dec, t); err != nil {
					return nil, err
				}
				td.Presets = append(td.Presets, ValuePreset{UnknownAt: bag})
			default:
				rd.warnUnknownElement("ISO11783_TaskData", t.Name)
				if err := skipElement(dec, t); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return td, nil
		}
	}
}

func intAttrRequired(values map[string]string, key string) (int, error) {
	v, ok := values[key]
	if !ok {
		return 0, ferrors.Errorf(ferrors.ParseError, "isoxml: missing required attribute %s", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ferrors.Errorf(ferrors.ParseError, "isoxml: attribute %s=%q is not an integer", key, v)
	}
	return n, nil
}

func (rd *Reader) readCustomer(start xml.StartElement) (Customer, error) {
	values, bag := splitAttrs(start.Attr, "A", "B")
	id, err := requireAttr(values, "A", "CTR")
	if err != nil {
		return Customer{}, err
	}
	if !customerIDPattern.MatchString(id) {
		return Customer{}, ferrors.Errorf(ferrors.ParseError, "isoxml: customer id %q does not match CTR\\d+", id)
	}
	return Customer{ID: id, Name: values["B"], UnknownAt: bag}, nil
}

func (rd *Reader) readFarm(start xml.StartElement) (Farm, error) {
	values, bag := splitAttrs(start.Attr, "A", "B", "I")
	id, err := requireAttr(values, "A", "FRM")
	if err != nil {
		return Farm{}, err
	}
	if !farmIDPattern.MatchString(id) {
		return Farm{}, ferrors.Errorf(ferrors.ParseError, "isoxml: farm id %q does not match FRM\\d+", id)
	}
	if cid, ok := values["I"]; ok && !customerIDPattern.MatchString(cid) {
		return Farm{}, ferrors.Errorf(ferrors.ParseError, "isoxml: farm %s customer id %q does not match CTR\\d+", id, cid)
	}
	return Farm{ID: id, Name: values["B"], CustomerID: values["I"], UnknownAt: bag}, nil
}

func (rd *Reader) readField(dec *xml.Decoder, start xml.StartElement) (Field, error) {
	values, bag := splitAttrs(start.Attr, "A", "B", "C", "D", "E", "F")
	id, err := requireAttr(values, "A", "PFD")
	if err != nil {
		return Field{}, err
	}
	if !fieldIDPattern.MatchString(id) {
		return Field{}, ferrors.Errorf(ferrors.ParseError, "isoxml: field id %q does not match PFD\\d+", id)
	}
	name, err := requireAttr(values, "C", "PFD")
	if err != nil {
		return Field{}, err
	}
	area, err := intAttrRequired(values, "D")
	if err != nil {
		return Field{}, err
	}

	field := Field{
		ID: id, Name: name, Area: area,
		Code: values["B"], CustomerID: values["E"], FarmID: values["F"],
		UnknownAt: bag,
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return Field{}, ferrors.Wrapf(ferrors.ParseError, err, "isoxml: reading field %s children", id)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "PLN" {
				p, err := rd.readPolygon(dec, t)
				if err != nil {
					return Field{}, err
				}
				field.Polygons = append(field.Polygons, p)
			} else {
				rd.warnUnknownElement("PFD", t.Name)
				if err := skipElement(dec, t); err != nil {
					return Field{}, err
				}
			}
		case xml.EndElement:
			return field, nil
		}
	}
}

func (rd *Reader) readPolygon(dec *xml.Decoder, start xml.StartElement) (Polygon, error) {
	values, bag := splitAttrs(start.Attr, "A")
	poly := Polygon{Type: values["A"], UnknownAt: bag}

	for {
		tok, err := dec.Token()
		if err != nil {
			return Polygon{}, ferrors.Wrap(ferrors.ParseError, err, "isoxml: reading PLN children")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "LSG" {
				ls, err := rd.readLineString(dec, t)
				if err != nil {
					return Polygon{}, err
				}
				poly.Lines = append(poly.Lines, ls)
			} else {
				rd.warnUnknownElement("PLN", t.Name)
				if err := skipElement(dec, t); err != nil {
					return Polygon{}, err
				}
			}
		case xml.EndElement:
			return poly, nil
		}
	}
}

func (rd *Reader) readLineString(dec *xml.Decoder, start xml.StartElement) (LineString, error) {
	values, bag := splitAttrs(start.Attr, "A")
	ls := LineString{Type: values["A"], UnknownAt: bag}

	for {
		tok, err := dec.Token()
		if err != nil {
			return LineString{}, ferrors.Wrap(ferrors.ParseError, err, "isoxml: reading LSG children")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "PNT" {
				p, err := rd.readPoint(t)
				if err != nil {
					return LineString{}, err
				}
				if err := skipElement(dec, t); err != nil {
					return LineString{}, err
				}
				ls.Points = append(ls.Points, p)
			} else {
				rd.warnUnknownElement("LSG", t.Name)
				if err := skipElement(dec, t); err != nil {
					return LineString{}, err
				}
			}
		case xml.EndElement:
			if len(ls.Points) > 0 && (ls.Type == LineStringExterior || ls.Type == LineStringInterior) && !closesRing(ls.Points) {
				return LineString{}, ferrors.Errorf(ferrors.ParseError, "isoxml: boundary line string has %d points, first != last or fewer than 4", len(ls.Points))
			}
			return ls, nil
		}
	}
}

func closesRing(pts []Point) bool {
	if len(pts) < 4 {
		return false
	}
	first, last := pts[0], pts[len(pts)-1]
	return first.LatDeg == last.LatDeg && first.LonDeg == last.LonDeg
}

func (rd *Reader) readPoint(start xml.StartElement) (Point, error) {
	values, bag := splitAttrs(start.Attr, "A", "C", "D")
	lat, err := floatAttr(values, "C")
	if err != nil {
		return Point{}, err
	}
	lon, err := floatAttr(values, "D")
	if err != nil {
		return Point{}, err
	}
	return Point{Type: values["A"], LatDeg: lat, LonDeg: lon, UnknownAt: bag}, nil
}

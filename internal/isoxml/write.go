package isoxml

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/isoagro/fieldinset/internal/ferrors"
)

// Writer serializes a TaskData back to ISO11783_TaskData XML.
type Writer struct{}

// NewWriter returns a Writer. The writer never logs; it has nothing to
// drop — everything it emits came from a TaskData the caller built.
func NewWriter() *Writer { return &Writer{} }

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// withBag appends bag's attributes after known, per Supplement B: unknown
// attributes re-emit after the attributes this schema names.
func withBag(known []xml.Attr, bag AttrBag) []xml.Attr {
	return append(append([]xml.Attr{}, known...), bag...)
}

// Write serializes td as an ISO11783_TaskData document to w.
func (wr *Writer) Write(w io.Writer, td *TaskData) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	known := []xml.Attr{
		attr("VersionMajor", strconv.Itoa(td.VersionMajor)),
		attr("VersionMinor", strconv.Itoa(td.VersionMinor)),
	}
	if td.DataTransferOrigin != DataTransferOriginUnset {
		known = append(known, attr("DataTransferOrigin", strconv.Itoa(td.DataTransferOrigin)))
	}
	if td.ManagementSoftwareManufacturer != "" {
		known = append(known, attr("ManagementSoftwareManufacturer", td.ManagementSoftwareManufacturer))
	}
	if td.ManagementSoftwareVersion != "" {
		known = append(known, attr("ManagementSoftwareVersion", td.ManagementSoftwareVersion))
	}

	root := xml.StartElement{Name: xml.Name{Local: "ISO11783_TaskData"}, Attr: withBag(known, td.UnknownAt)}
	if err := enc.EncodeToken(root); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing root element")
	}

	for _, c := range td.Customers {
		if err := writeCustomer(enc, c); err != nil {
			return err
		}
	}
	for _, f := range td.Farms {
		if err := writeFarm(enc, f); err != nil {
			return err
		}
	}
	for _, f := range td.Fields {
		if err := writeField(enc, f); err != nil {
			return err
		}
	}
	for _, p := range td.Presets {
		start := xml.StartElement{Name: xml.Name{Local: "VPN"}, Attr: withBag(nil, p.UnknownAt)}
		if err := enc.EncodeToken(start); err != nil {
			return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing VPN element")
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing VPN element")
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: closing root element")
	}
	return ferrors.Wrap(ferrors.IoError, enc.Flush(), "isoxml: flushing output")
}

func writeCustomer(enc *xml.Encoder, c Customer) error {
	known := []xml.Attr{attr("A", c.ID), attr("B", c.Name)}
	start := xml.StartElement{Name: xml.Name{Local: "CTR"}, Attr: withBag(known, c.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing CTR element")
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing CTR element")
}

func writeFarm(enc *xml.Encoder, f Farm) error {
	known := []xml.Attr{attr("A", f.ID), attr("B", f.Name)}
	if f.CustomerID != "" {
		known = append(known, attr("I", f.CustomerID))
	}
	start := xml.StartElement{Name: xml.Name{Local: "FRM"}, Attr: withBag(known, f.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing FRM element")
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing FRM element")
}

func writeField(enc *xml.Encoder, f Field) error {
	known := []xml.Attr{attr("A", f.ID)}
	if f.Code != "" {
		known = append(known, attr("B", f.Code))
	}
	known = append(known, attr("C", f.Name), attr("D", strconv.Itoa(f.Area)))
	if f.CustomerID != "" {
		known = append(known, attr("E", f.CustomerID))
	}
	if f.FarmID != "" {
		known = append(known, attr("F", f.FarmID))
	}

	start := xml.StartElement{Name: xml.Name{Local: "PFD"}, Attr: withBag(known, f.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing PFD element")
	}
	for _, p := range f.Polygons {
		if err := writePolygon(enc, p); err != nil {
			return err
		}
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing PFD element")
}

func writePolygon(enc *xml.Encoder, p Polygon) error {
	start := xml.StartElement{Name: xml.Name{Local: "PLN"}, Attr: withBag([]xml.Attr{attr("A", p.Type)}, p.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing PLN element")
	}
	for _, ls := range p.Lines {
		if err := writeLineString(enc, ls); err != nil {
			return err
		}
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing PLN element")
}

func writeLineString(enc *xml.Encoder, ls LineString) error {
	start := xml.StartElement{Name: xml.Name{Local: "LSG"}, Attr: withBag([]xml.Attr{attr("A", ls.Type)}, ls.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing LSG element")
	}
	for _, p := range ls.Points {
		if err := writePoint(enc, p); err != nil {
			return err
		}
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing LSG element")
}

func writePoint(enc *xml.Encoder, p Point) error {
	known := []xml.Attr{
		attr("A", p.Type),
		attr("C", strconv.FormatFloat(p.LatDeg, 'f', -1, 64)),
		attr("D", strconv.FormatFloat(p.LonDeg, 'f', -1, 64)),
	}
	start := xml.StartElement{Name: xml.Name{Local: "PNT"}, Attr: withBag(known, p.UnknownAt)}
	if err := enc.EncodeToken(start); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "isoxml: writing PNT element")
	}
	return ferrors.Wrap(ferrors.IoError, enc.EncodeToken(start.End()), "isoxml: writing PNT element")
}

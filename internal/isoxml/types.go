// Package isoxml reads and writes ISO 11783-10 "TASKDATA" XML documents
// (§6): the root ISO11783_TaskData element, its CTR/FRM/PFD/VPN children,
// and a PFD's PLN/LSG/PNT boundary geometry. Unknown attributes on any
// known element are preserved verbatim (§9's "ordered sequence of (key,
// value) pairs", realized here as AttrBag); unknown child elements are
// logged and dropped (§7).
package isoxml

import "encoding/xml"

// AttrBag holds every XML attribute on an element that this package's
// schema (§6) does not name explicitly, in source order, so that a
// read-then-write round trip reproduces them.
type AttrBag []xml.Attr

// Point is a PNT element: a guidance or boundary vertex.
//
//	A: type code (10=Field, 6=GuideA, 7=GuideB, 9=GuidePoint)
//	C: latitude, degrees
//	D: longitude, degrees
type Point struct {
	Type      string
	LatDeg    float64
	LonDeg    float64
	UnknownAt AttrBag
}

// Point type codes (§6).
const (
	PointTypeField      = "10"
	PointTypeGuideA     = "6"
	PointTypeGuideB     = "7"
	PointTypeGuidePoint = "9"
)

// LineString is an LSG element: an ordered sequence of points.
//
//	A: type code (1=Exterior, 2=Interior, 5=Guidance)
type LineString struct {
	Type      string
	Points    []Point
	UnknownAt AttrBag
}

// Line string type codes (§6).
const (
	LineStringExterior = "1"
	LineStringInterior = "2"
	LineStringGuidance = "5"
)

// Polygon is a PLN element: a boundary polygon composed of line strings.
//
//	A: type code (1=Boundary)
type Polygon struct {
	Type      string
	Lines     []LineString
	UnknownAt AttrBag
}

// PolygonTypeBoundary is PLN's "A" type code for a field boundary (§6).
const PolygonTypeBoundary = "1"

// Field is a PFD element.
//
//	A: id, PFD\d+
//	C: name
//	D: area, m^2
//	B: optional code
//	E: optional customer id, CTR\d+
//	F: optional farm id, FRM\d+
type Field struct {
	ID         string
	Name       string
	Area       int
	Code       string
	CustomerID string
	FarmID     string
	Polygons   []Polygon
	UnknownAt  AttrBag
}

// Farm is an FRM element.
//
//	A: id, FRM\d+
//	B: name
//	I: optional customer id, CTR\d+
type Farm struct {
	ID         string
	Name       string
	CustomerID string
	UnknownAt  AttrBag
}

// Customer is a CTR element.
//
//	A: id, CTR\d+
//	B: name
type Customer struct {
	ID        string
	Name      string
	UnknownAt AttrBag
}

// ValuePreset is a VPN element, preserved opaquely: nothing in §6 gives it
// semantic content beyond "preserved verbatim" round-tripping.
type ValuePreset struct {
	UnknownAt AttrBag
}

// TaskData is the ISO11783_TaskData root element.
//
//	VersionMajor, VersionMinor: required ints
//	DataTransferOrigin: optional int, default -1 (unset)
//	ManagementSoftwareManufacturer, ManagementSoftwareVersion: strings
type TaskData struct {
	VersionMajor                   int
	VersionMinor                   int
	DataTransferOrigin             int
	ManagementSoftwareManufacturer string
	ManagementSoftwareVersion      string

	Customers []Customer
	Farms     []Farm
	Fields    []Field
	Presets   []ValuePreset

	UnknownAt AttrBag
}

// DataTransferOriginUnset is the default for an absent DataTransferOrigin
// attribute (§6).
const DataTransferOriginUnset = -1

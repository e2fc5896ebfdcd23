// Package farmdb is the relational container for customers, farms, and
// fields (§3): a single owning store indexed by stable integer handles,
// with farm/customer references held as weak (non-owning) back-links, as
// §9 describes for porting "field -> farm -> customer" out of a
// pointer-graph source representation.
package farmdb

import "github.com/isoagro/fieldinset/internal/geo"

// CustomerHandle, FarmHandle, and FieldHandle are stable indices into a
// FarmDb's owning slices. They remain valid for the FarmDb's lifetime;
// nothing is ever removed once added.
type (
	CustomerHandle int
	FarmHandle     int
	FieldHandle    int
)

// NoFarm is the sentinel FarmHandle a field carries when its PFD element
// had no optional F (farm id) attribute (§6): Farm(NoFarm) is nil, like
// any other out-of-range handle.
const NoFarm FarmHandle = -1

// Customer is a grower/client record (§6's CTR element).
type Customer struct {
	ID   string
	Name string
}

// Farm belongs to a customer (§6's FRM element). Customer is a weak
// back-reference, not ownership.
type Farm struct {
	ID       string
	Name     string
	Customer CustomerHandle
}

// FieldPart is one polygon (boundary, with holes) belonging to a Field.
// Inset does not write OuterSwaths or HoleSwaths: it puts every swath it
// computes, named, in Field.Swaths, and these two fields stay as the
// caller left them (empty unless set directly).
type FieldPart struct {
	Boundary geo.GeoPolygon
	// OuterSwaths is a MultiPath around the part's outer inset boundary.
	OuterSwaths geo.GeoMultiPath
	// HoleSwaths holds one MultiPath per hole of Boundary, in order.
	HoleSwaths []geo.GeoMultiPath
}

// SwathName pairs a component name (§6's naming rules) with its geometry.
type SwathName struct {
	Name string
	Path geo.GeoMultiPath
}

// Field belongs to a farm (§6's PFD element). Farm is a weak
// back-reference, not ownership. Parts holds one entry per polygon the
// source geometry carried (a field may have several disjoint boundary
// parts, per §6's "F<k>" naming).
type Field struct {
	ID    string
	Name  string
	Area  int
	Code  string
	Farm  FarmHandle
	Parts []FieldPart

	// Swaths is replaced wholesale by Inset (§6): the flattened,
	// named swath list for this field across every part and hole.
	Swaths []SwathName
}

// FarmDb is the sole owner of every Customer, Farm, and Field; all
// cross-references between them are handles into these three slices.
type FarmDb struct {
	customers []Customer
	farms     []Farm
	fields    []Field
}

// NewFarmDb returns an empty container.
func NewFarmDb() *FarmDb {
	return &FarmDb{}
}

// AddCustomer appends a new customer and returns its handle.
func (db *FarmDb) AddCustomer(id, name string) CustomerHandle {
	db.customers = append(db.customers, Customer{ID: id, Name: name})
	return CustomerHandle(len(db.customers) - 1)
}

// AddFarm appends a new farm under customer and returns its handle.
func (db *FarmDb) AddFarm(id, name string, customer CustomerHandle) FarmHandle {
	db.farms = append(db.farms, Farm{ID: id, Name: name, Customer: customer})
	return FarmHandle(len(db.farms) - 1)
}

// AddField appends a new field under farm and returns its handle.
func (db *FarmDb) AddField(id, name string, area int, code string, farm FarmHandle) FieldHandle {
	db.fields = append(db.fields, Field{ID: id, Name: name, Area: area, Code: code, Farm: farm})
	return FieldHandle(len(db.fields) - 1)
}

// Customer returns the customer at h, or nil if h is out of range.
func (db *FarmDb) Customer(h CustomerHandle) *Customer {
	if h < 0 || int(h) >= len(db.customers) {
		return nil
	}
	return &db.customers[h]
}

// Farm returns the farm at h, or nil if h is out of range.
func (db *FarmDb) Farm(h FarmHandle) *Farm {
	if h < 0 || int(h) >= len(db.farms) {
		return nil
	}
	return &db.farms[h]
}

// Field returns the field at h, or nil if h is out of range.
func (db *FarmDb) Field(h FieldHandle) *Field {
	if h < 0 || int(h) >= len(db.fields) {
		return nil
	}
	return &db.fields[h]
}

// Fields returns every field handle currently in the container, in
// insertion order.
func (db *FarmDb) Fields() []FieldHandle {
	out := make([]FieldHandle, len(db.fields))
	for i := range db.fields {
		out[i] = FieldHandle(i)
	}
	return out
}

// Customers returns every customer handle currently in the container, in
// insertion order.
func (db *FarmDb) Customers() []CustomerHandle {
	out := make([]CustomerHandle, len(db.customers))
	for i := range db.customers {
		out[i] = CustomerHandle(i)
	}
	return out
}

// Farms returns every farm handle currently in the container, in
// insertion order.
func (db *FarmDb) Farms() []FarmHandle {
	out := make([]FarmHandle, len(db.farms))
	for i := range db.farms {
		out[i] = FarmHandle(i)
	}
	return out
}

// SetPart replaces (or appends, if idx == len(field.Parts)) the polygon
// boundary for a field part. Codecs use this while reading a field's
// geometry; it does not touch Swaths.
func (db *FarmDb) SetPart(h FieldHandle, idx int, boundary geo.GeoPolygon) {
	f := db.Field(h)
	if f == nil {
		return
	}
	for len(f.Parts) <= idx {
		f.Parts = append(f.Parts, FieldPart{})
	}
	f.Parts[idx].Boundary = boundary
}

package wkt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/ferrors"
)

// Writer emits one tab-separated line per boundary part and per named
// swath in a FarmDb: "<field name>\t<part name>\t<WKT>".
type Writer struct{}

// NewWriter returns a Writer; it carries no state of its own, matching
// isoxml.Writer's shape.
func NewWriter() *Writer { return &Writer{} }

// Write walks every field in db in handle order and writes its boundary
// parts, then its swaths, to w. A field with a single part names it
// "Boundary"; a field split into several parts names them "Boundary F1",
// "Boundary F2", ... (§6).
func (wr *Writer) Write(w io.Writer, db *farmdb.FarmDb) error {
	bw := bufio.NewWriter(w)

	for _, h := range db.Fields() {
		field := db.Field(h)

		for i, part := range field.Parts {
			partName := "Boundary"
			if len(field.Parts) > 1 {
				partName = fmt.Sprintf("Boundary F%d", i+1)
			}
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", field.Name, partName, Polygon(part.Boundary)); err != nil {
				return ferrors.Wrap(ferrors.IoError, err, "wkt: writing boundary row")
			}
		}

		for _, sw := range field.Swaths {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", field.Name, sw.Name, MultiLineString(sw.Path)); err != nil {
				return ferrors.Wrap(ferrors.IoError, err, "wkt: writing swath row")
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return ferrors.Wrap(ferrors.IoError, err, "wkt: flushing output")
	}
	return nil
}

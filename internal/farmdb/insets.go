package farmdb

import (
	"fmt"

	"github.com/isoagro/fieldinset/geos"
	"github.com/isoagro/fieldinset/internal/geo"
	"github.com/isoagro/fieldinset/internal/inset"
)

// Inset recomputes the inset swaths for every field in the container and
// replaces each field's Swaths list, per §6's naming rules:
//
//   - a field part f (1-based) is named name if f == 1, else "name Ff".
//   - if a part's inset splits into multiple polygons, each gets a
//     "_n" suffix (n = 1, 2, ...), applied to every resulting polygon,
//     not just the second and later ones.
//   - each hole swath is named "name Ii" — the field's base name, not
//     the part name — with i increasing monotonically across the whole
//     field (not reset per part).
func (db *FarmDb) Inset(svc *geos.Service, name string, offset geo.Length) error {
	for i := range db.fields {
		field := &db.fields[i]
		field.Swaths = nil
		holeIdx := 1

		for partIdx, part := range field.Parts {
			partName := name
			if partIdx+1 > 1 {
				partName = fmt.Sprintf("%s F%d", name, partIdx+1)
			}

			polys, err := inset.BoundarySwaths(svc, part.Boundary, offset, inset.DefaultCleanupTolerance)
			if err != nil {
				return err
			}

			// One entry in polys per output polygon the buffer produced;
			// a part whose inset did not split yields exactly one and
			// stays unsuffixed. A part that does split gets "_n" on
			// every resulting polygon (§6).
			for polyIdx, ps := range polys {
				outerName := partName
				if len(polys) > 1 {
					outerName = fmt.Sprintf("%s_%d", partName, polyIdx+1)
				}
				field.Swaths = append(field.Swaths, SwathName{Name: outerName, Path: ps.Outer})

				for _, h := range ps.Holes {
					field.Swaths = append(field.Swaths, SwathName{
						Name: fmt.Sprintf("%s I%d", name, holeIdx),
						Path: h,
					})
					holeIdx++
				}
			}
		}
	}
	return nil
}
